package sandbox

import (
	"context"
	"io"
	"time"

	"github.com/slok/sbxd/internal/model"
)

//go:generate mockery --case underscore --output sandboxmock --outpkg sandboxmock --name Engine --structname MockEngine
//go:generate mockery --case underscore --output sandboxmock --outpkg sandboxmock --name TTYSession --structname MockTTYSession

// Engine is the interface for sandbox lifecycle management on top of a container runtime.
type Engine interface {
	// Ping checks the container runtime is reachable.
	Ping(ctx context.Context) error

	// Create makes sure the base image is present, creates the sandbox and starts it.
	Create(ctx context.Context, cfg model.SandboxConfig) (*model.Sandbox, error)
	Start(ctx context.Context, id string) error
	// Stop sends the termination signal and kills the sandbox after the grace
	// period, resolved with model.GracePeriodOrDefault.
	Stop(ctx context.Context, id string, grace time.Duration) error
	Restart(ctx context.Context, id string, grace time.Duration) error
	// Update changes the mutable settings of a sandbox (restart policy, memory and cpu).
	Update(ctx context.Context, id string, upd model.SandboxUpdate) error
	Remove(ctx context.Context, id string, force bool) error
	Status(ctx context.Context, id string) (*model.Sandbox, error)
	List(ctx context.Context, includeStopped bool) ([]model.Sandbox, error)

	// Exec runs a command inside a running sandbox and waits for it to end.
	// The exit code is only known once the output stream has ended.
	Exec(ctx context.Context, id string, command []string, opts model.ExecOpts) (*model.ExecResult, error)

	// Attach starts a long-lived interactive command with a TTY inside a running sandbox.
	Attach(ctx context.Context, id string, command []string) (TTYSession, error)

	// PutArchive extracts a tar archive at dstDir inside the sandbox.
	PutArchive(ctx context.Context, id string, dstDir string, archive io.Reader) error
	// GetArchive returns a tar archive stream of srcPath inside the sandbox.
	// The caller must close it.
	GetArchive(ctx context.Context, id string, srcPath string) (io.ReadCloser, error)
}

// TTYSession is a live interactive exec session inside a sandbox.
// Reads return the command output and writes go to the command input.
type TTYSession interface {
	io.ReadWriteCloser
	// Resize changes the TTY window size.
	Resize(ctx context.Context, cols, rows uint) error
	// ExitCode returns the exit code of the command once it has ended.
	ExitCode(ctx context.Context) (int, error)
}
