package exec

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
)

//go:generate mockery --case underscore --output execmock --outpkg execmock --name Uploader --structname MockUploader

// Uploader uploads local files into a sandbox.
type Uploader interface {
	Mkdir(ctx context.Context, id string, dir string) error
	CopyTo(ctx context.Context, id string, localPath string, sandboxPath string) error
}

// ServiceConfig is the configuration for the exec service.
type ServiceConfig struct {
	Runner executor.Runner
	// Uploader is required only when files are uploaded before executing.
	Uploader Uploader
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Runner == nil {
		return fmt.Errorf("runner is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Exec"})
	return nil
}

// Service handles command execution in sandboxes.
type Service struct {
	runner   executor.Runner
	uploader Uploader
	logger   log.Logger
}

// NewService creates a new exec service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		runner:   cfg.Runner,
		uploader: cfg.Uploader,
		logger:   cfg.Logger,
	}, nil
}

// Request contains the parameters for executing a command.
type Request struct {
	NameOrID string
	// Command is a shell command line when it has a single token, otherwise the
	// tokens are executed as is without shell interpretation.
	Command []string
	Opts    model.ExecOpts
	// Files are local file paths to upload into the sandbox before executing.
	// Files are uploaded to the working directory (Opts.WorkingDir) or "/" if unset.
	Files []string
}

// argvScript executes the positional arguments as the command.
const argvScript = `exec "$@"`

// Run executes a command in a sandbox.
func (s *Service) Run(ctx context.Context, req Request) (*model.ExecResult, error) {
	// 1. Validate command
	if len(req.Command) == 0 {
		return nil, fmt.Errorf("command cannot be empty: %w", model.ErrNotValid)
	}

	// 2. Upload files before exec (if any).
	if len(req.Files) > 0 {
		if err := s.upload(ctx, req); err != nil {
			return nil, err
		}
	}

	// 3. Execute command, the executor checks the sandbox is running.
	command, args := req.Command[0], []string(nil)
	if len(req.Command) > 1 {
		command, args = argvScript, req.Command
	}

	result, err := s.runner.RunWithOpts(ctx, req.NameOrID, req.Opts, command, args...)
	if err != nil {
		return nil, fmt.Errorf("could not execute command: %w", err)
	}

	s.logger.Debugf("executed command in sandbox %s: exit code %d", req.NameOrID, result.ExitCode)

	return result, nil
}

func (s *Service) upload(ctx context.Context, req Request) error {
	if s.uploader == nil {
		return fmt.Errorf("file uploads are not available: %w", model.ErrNotValid)
	}

	destDir := req.Opts.WorkingDir
	if destDir == "" {
		destDir = "/"
	}

	// Validate all local files exist before doing any work.
	for _, f := range req.Files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("upload file %q does not exist: %w: %w", f, err, model.ErrNotValid)
		}
	}

	// Ensure the destination directory exists inside the sandbox.
	if err := s.uploader.Mkdir(ctx, req.NameOrID, destDir); err != nil {
		return fmt.Errorf("could not create destination directory %q: %w", destDir, err)
	}

	for _, f := range req.Files {
		remotePath := path.Join(destDir, filepath.Base(f))
		s.logger.Debugf("Uploading %s to %s:%s", f, req.NameOrID, remotePath)

		if err := s.uploader.CopyTo(ctx, req.NameOrID, f, remotePath); err != nil {
			return fmt.Errorf("could not upload file %q: %w", f, err)
		}
	}

	return nil
}
