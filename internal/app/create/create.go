package create

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/provision"
	"github.com/slok/sbxd/internal/sandbox"
)

// ServiceConfig is the configuration for the create service.
type ServiceConfig struct {
	Engine sandbox.Engine
	Runner executor.Runner
	// Copier uploads the files requested on creation, optional.
	Copier  provision.Copier
	Catalog provision.Catalog
	// FailurePatterns enables the stderr failure heuristic on dependency scripts.
	FailurePatterns []string
	// Stdout and Stderr receive the output of the provisioning scripts.
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.Runner == nil {
		return fmt.Errorf("runner is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Create"})
	return nil
}

// Service handles sandbox creation business logic.
type Service struct {
	engine          sandbox.Engine
	runner          executor.Runner
	copier          provision.Copier
	catalog         provision.Catalog
	failurePatterns []string
	stdout          io.Writer
	stderr          io.Writer
	logger          log.Logger
}

// NewService creates a new create service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine:          cfg.Engine,
		runner:          cfg.Runner,
		copier:          cfg.Copier,
		catalog:         cfg.Catalog,
		failurePatterns: cfg.FailurePatterns,
		stdout:          cfg.Stdout,
		stderr:          cfg.Stderr,
		logger:          cfg.Logger,
	}, nil
}

// CreateOptions are the options for creating a sandbox.
type CreateOptions struct {
	Config model.SandboxConfig
	// Files are uploaded after the dependencies have been installed.
	Files []provision.CopyPath
}

// Create creates and starts a new sandbox and installs its dependencies.
//
// When the provisioning fails the sandbox is left running and returned together
// with a *model.ProvisioningError.
func (s *Service) Create(ctx context.Context, opts CreateOptions) (*model.Sandbox, error) {
	// 1. Validate config.
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(opts.Files) > 0 && s.copier == nil {
		return nil, fmt.Errorf("file uploads require a copier: %w", model.ErrNotValid)
	}

	// 2. Create and start via engine.
	sb, err := s.engine.Create(ctx, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("could not create sandbox: %w", err)
	}
	logger := s.logger.WithValues(log.Kv{"sandbox-id": sb.ID, "sandbox-name": sb.Name})
	logger.Infof("Created sandbox")

	// 3. Provision.
	accessor := provision.NewSandboxAccessor(s.runner, s.copier, sb.ID)
	deps, err := provision.NewDependencyPipeline(provision.DependencyPipelineConfig{
		Accessor:        accessor,
		Catalog:         s.catalog,
		Dependencies:    opts.Config.Dependencies,
		FailurePatterns: s.failurePatterns,
		Stdout:          s.stdout,
		Stderr:          s.stderr,
		Logger:          logger,
	})
	if err != nil {
		return sb, &model.ProvisioningError{SandboxID: sb.ID, Err: err}
	}

	steps := []provision.Provisioner{deps}
	for _, f := range opts.Files {
		p, err := provision.NewCopyPath(provision.CopyPathConfig{Accessor: accessor, Path: f, Logger: logger})
		if err != nil {
			return sb, &model.ProvisioningError{SandboxID: sb.ID, Err: err}
		}
		steps = append(steps, provision.NewLogProvisioner("copy "+f.SrcLocal, logger, p))
	}

	if err := provision.NewProvisionerChain(steps...).Provision(ctx); err != nil {
		logger.Errorf("Sandbox provisioning failed, sandbox left running: %s", err)
		var perr *model.ProvisioningError
		if !errors.As(err, &perr) {
			err = &model.ProvisioningError{SandboxID: sb.ID, Err: err}
		}
		return sb, err
	}

	return sb, nil
}
