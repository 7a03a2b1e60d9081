package provision

import (
	"context"
	"fmt"

	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
)

//go:generate mockery --case underscore --output provisionmock --outpkg provisionmock --name Provisioner --structname MockProvisioner
//go:generate mockery --case underscore --output provisionmock --outpkg provisionmock --name SandboxAccessor --structname MockSandboxAccessor
//go:generate mockery --case underscore --output provisionmock --outpkg provisionmock --name Copier --structname MockCopier

// Provisioner is the interface that all provisioners must implement.
type Provisioner interface {
	Provision(ctx context.Context) error
}

// ProvisionerFunc is a convenience adapter to allow the use of ordinary functions as Provisioners.
type ProvisionerFunc func(ctx context.Context) error

func (f ProvisionerFunc) Provision(ctx context.Context) error { return f(ctx) }

// Copier uploads local files into sandboxes.
type Copier interface {
	CopyTo(ctx context.Context, id string, localPath string, sandboxPath string) error
}

// SandboxAccessor provides provisioners access to a single sandbox.
// Provisioners don't have access to lifecycle operations (start/stop/remove).
type SandboxAccessor interface {
	SandboxID() string
	Run(ctx context.Context, opts model.ExecOpts, command string, args ...string) (*model.ExecResult, error)
	CopyTo(ctx context.Context, srcLocal string, dstRemote string) error
}

// NewSandboxAccessor creates a SandboxAccessor bound to a specific sandbox ID.
// copier is optional, without it CopyTo fails.
func NewSandboxAccessor(runner executor.Runner, copier Copier, sandboxID string) SandboxAccessor {
	return &sandboxAccessor{
		runner:    runner,
		copier:    copier,
		sandboxID: sandboxID,
	}
}

type sandboxAccessor struct {
	runner    executor.Runner
	copier    Copier
	sandboxID string
}

func (a *sandboxAccessor) SandboxID() string { return a.sandboxID }

func (a *sandboxAccessor) Run(ctx context.Context, opts model.ExecOpts, command string, args ...string) (*model.ExecResult, error) {
	return a.runner.RunWithOpts(ctx, a.sandboxID, opts, command, args...)
}

func (a *sandboxAccessor) CopyTo(ctx context.Context, srcLocal string, dstRemote string) error {
	if a.copier == nil {
		return fmt.Errorf("file copy is not available")
	}
	return a.copier.CopyTo(ctx, a.sandboxID, srcLocal, dstRemote)
}

// NewProvisionerChain returns a Provisioner that runs all provisioners sequentially.
// If any provisioner fails, the chain stops and returns the error.
// An empty chain succeeds immediately.
func NewProvisionerChain(provisioners ...Provisioner) Provisioner {
	return ProvisionerFunc(func(ctx context.Context) error {
		for i, p := range provisioners {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("provisioner chain cancelled at step %d: %w", i, err)
			}

			if err := p.Provision(ctx); err != nil {
				return fmt.Errorf("provisioner chain failed at step %d: %w", i, err)
			}
		}
		return nil
	})
}

// NewNoopProvisioner returns a provisioner that does nothing.
func NewNoopProvisioner() Provisioner {
	return ProvisionerFunc(func(_ context.Context) error { return nil })
}

// NewLogProvisioner wraps a provisioner with logging before and after execution.
func NewLogProvisioner(name string, logger log.Logger, p Provisioner) Provisioner {
	return ProvisionerFunc(func(ctx context.Context) error {
		logger.Infof("Provisioning %q...", name)

		if err := p.Provision(ctx); err != nil {
			logger.Errorf("Provisioning %q failed: %s", name, err)
			return err
		}

		logger.Infof("Provisioned %q", name)
		return nil
	})
}
