package provision

import (
	"context"
	"fmt"
	"io"

	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
)

// ScriptConfig is the configuration of a provisioner that runs a shell script.
type ScriptConfig struct {
	Accessor SandboxAccessor
	// Name identifies the script in errors and logs.
	Name   string
	Script string
	// Stdout and Stderr receive the script output while it runs. Optional.
	Stdout io.Writer
	Stderr io.Writer
	// FailurePatterns mark the script as failed when found on its stderr.
	FailurePatterns []string
}

func (c *ScriptConfig) defaults() error {
	if c.Accessor == nil {
		return fmt.Errorf("accessor is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Script == "" {
		return fmt.Errorf("script is required")
	}
	return nil
}

// NewScript returns a provisioner that runs a script inside the sandbox. A script
// that fails returns a *model.ProvisioningError.
func NewScript(cfg ScriptConfig) (Provisioner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid script config: %w", err)
	}

	return ProvisionerFunc(func(ctx context.Context) error {
		res, err := cfg.Accessor.Run(ctx, model.ExecOpts{Stdout: cfg.Stdout, Stderr: cfg.Stderr}, cfg.Script)
		if err == nil {
			err = executor.CheckFailure(res, cfg.FailurePatterns...)
		}
		if err != nil {
			return &model.ProvisioningError{
				SandboxID:  cfg.Accessor.SandboxID(),
				Dependency: cfg.Name,
				Err:        err,
			}
		}
		return nil
	}), nil
}

// DependencyPipelineConfig is the configuration of the dependency provisioning pipeline.
type DependencyPipelineConfig struct {
	Accessor SandboxAccessor
	// Catalog defaults to the builtin catalog.
	Catalog Catalog
	// Dependencies in `type[:version]` format, installed in order.
	Dependencies    []string
	FailurePatterns []string
	Stdout          io.Writer
	Stderr          io.Writer
	Logger          log.Logger
}

func (c *DependencyPipelineConfig) defaults() error {
	if c.Accessor == nil {
		return fmt.Errorf("accessor is required")
	}
	if c.Catalog == nil {
		catalog, err := BuiltinCatalog()
		if err != nil {
			return err
		}
		c.Catalog = catalog
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "provision.DependencyPipeline", "sandbox-id": c.Accessor.SandboxID()})
	return nil
}

// NewDependencyPipeline returns a provisioner that installs the dependencies
// strictly in order. Unknown dependency types are skipped with a warning, the
// first failing install aborts the pipeline. Scripts are rendered when their
// step runs, so a recipe that can't be rendered only stops the steps after it.
func NewDependencyPipeline(cfg DependencyPipelineConfig) (Provisioner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	steps := make([]Provisioner, 0, len(cfg.Dependencies))
	for _, d := range cfg.Dependencies {
		dep, err := model.ParseDependency(d)
		if err != nil {
			return nil, err
		}

		if _, ok := cfg.Catalog[dep.Type]; !ok {
			cfg.Logger.Warningf("Skipping unknown dependency %q, known: %v", dep, cfg.Catalog.Types())
			continue
		}

		steps = append(steps, NewLogProvisioner(dep.String(), cfg.Logger, newDependencyStep(cfg, dep)))
	}

	if len(steps) == 0 {
		return NewNoopProvisioner(), nil
	}

	return NewProvisionerChain(steps...), nil
}

func newDependencyStep(cfg DependencyPipelineConfig, dep model.DependencySpec) Provisioner {
	return ProvisionerFunc(func(ctx context.Context) error {
		script, resolved, err := cfg.Catalog.Render(dep)
		if err != nil {
			return &model.ProvisioningError{
				SandboxID:  cfg.Accessor.SandboxID(),
				Dependency: resolved.String(),
				Err:        err,
			}
		}

		p, err := NewScript(ScriptConfig{
			Accessor:        cfg.Accessor,
			Name:            resolved.String(),
			Script:          script,
			Stdout:          cfg.Stdout,
			Stderr:          cfg.Stderr,
			FailurePatterns: cfg.FailurePatterns,
		})
		if err != nil {
			return &model.ProvisioningError{SandboxID: cfg.Accessor.SandboxID(), Dependency: resolved.String(), Err: err}
		}

		return p.Provision(ctx)
	})
}
