package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/sbxd/internal/app/create"
	"github.com/slok/sbxd/internal/config"
	"github.com/slok/sbxd/internal/metrics"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/provision"
)

type CreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file string

	name          string
	image         string
	ports         []string
	envSpecs      []string
	volumes       []string
	memory        string
	cpu           float64
	deps          []string
	command       []string
	restartPolicy string
	copies        []string
}

// NewCreateCommand returns the create command.
func NewCreateCommand(rootCmd *RootCommand, app *kingpin.Application) *CreateCommand {
	c := &CreateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("create", "Create and start a new sandbox.")
	c.Cmd.Flag("file", "Sandbox YAML configuration, flags override its values.").Short('f').StringVar(&c.file)
	c.Cmd.Flag("name", "Name for the sandbox, generated if not set.").Short('n').StringVar(&c.name)
	c.Cmd.Flag("image", "Base image.").Short('i').StringVar(&c.image)
	c.Cmd.Flag("port", "Published port (CONTAINER, HOST:CONTAINER or HOST:CONTAINER/PROTO). Can be repeated.").Short('p').StringsVar(&c.ports)
	c.Cmd.Flag("env", "Environment variables (KEY=VALUE or KEY from current environment). Can be repeated.").Short('e').StringsVar(&c.envSpecs)
	c.Cmd.Flag("volume", "Bind mount (HOST:CONTAINER[:ro]). Can be repeated.").Short('v').StringsVar(&c.volumes)
	c.Cmd.Flag("memory", "Memory limit (e.g. 512m, 2g).").Short('m').StringVar(&c.memory)
	c.Cmd.Flag("cpu", "Number of CPUs (can be fractional, e.g., 0.5, 1.5).").Float64Var(&c.cpu)
	c.Cmd.Flag("dep", "Dependency to install (TYPE or TYPE:VERSION). Can be repeated.").Short('d').StringsVar(&c.deps)
	c.Cmd.Flag("restart", "Restart policy.").EnumVar(&c.restartPolicy,
		string(model.RestartPolicyNo), string(model.RestartPolicyAlways), string(model.RestartPolicyOnFailure), string(model.RestartPolicyUnlessStopped))
	c.Cmd.Flag("copy", "Local file to upload after the dependencies (LOCAL:/SANDBOX/PATH). Can be repeated.").StringsVar(&c.copies)
	c.Cmd.Arg("command", "Main process command, keeps the sandbox alive by default (use -- before command).").StringsVar(&c.command)

	return c
}

func (c CreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.sandboxConfig(ctx)
	if err != nil {
		return err
	}

	copies := make([]provision.CopyPath, 0, len(c.copies))
	for _, s := range c.copies {
		cp, err := provision.ParseCopyPath(s)
		if err != nil {
			return fmt.Errorf("invalid --copy value: %w", err)
		}
		copies = append(copies, cp)
	}

	appCfg, err := c.rootCmd.loadConfig(ctx)
	if err != nil {
		return err
	}

	rt, err := c.rootCmd.newRuntime(metrics.Noop)
	if err != nil {
		return err
	}
	defer func() { _ = rt.close() }()

	svc, err := create.NewService(create.ServiceConfig{
		Engine:          rt.engine,
		Runner:          rt.executor,
		Copier:          rt.files,
		Catalog:         appCfg.Catalog,
		FailurePatterns: appCfg.FailurePatterns,
		Stdout:          c.rootCmd.Stderr,
		Stderr:          c.rootCmd.Stderr,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	sb, err := svc.Create(ctx, create.CreateOptions{
		Config: cfg,
		Files:  copies,
	})
	if err != nil {
		// The sandbox is kept on provisioning failures so it can be inspected.
		var perr *model.ProvisioningError
		if sb != nil && errors.As(err, &perr) {
			fmt.Fprintf(c.rootCmd.Stderr, "Sandbox %s (%s) created but provisioning failed\n", sb.Name, sb.ID)
		}
		return fmt.Errorf("could not create sandbox: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Sandbox created successfully!\n")
	fmt.Fprintf(c.rootCmd.Stdout, "  ID:     %s\n", sb.ID)
	fmt.Fprintf(c.rootCmd.Stdout, "  Name:   %s\n", sb.Name)
	fmt.Fprintf(c.rootCmd.Stdout, "  Image:  %s\n", sb.Image)
	fmt.Fprintf(c.rootCmd.Stdout, "  Status: %s\n", sb.Status)

	return nil
}

// sandboxConfig returns the sandbox configuration from the YAML file (if any) with
// the flags set on top.
func (c CreateCommand) sandboxConfig(ctx context.Context) (model.SandboxConfig, error) {
	var cfg model.SandboxConfig
	if c.file != "" {
		abs, err := filepath.Abs(c.file)
		if err != nil {
			return cfg, fmt.Errorf("invalid --file value: %w", err)
		}
		cfg, err = config.NewConfigYAMLRepository(os.DirFS(filepath.Dir(abs))).GetSandboxConfig(ctx, filepath.Base(abs))
		if err != nil {
			return cfg, err
		}
	}

	env, err := parseEnvSpecs(c.envSpecs)
	if err != nil {
		return cfg, fmt.Errorf("invalid --env value: %w", err)
	}

	if c.name != "" {
		cfg.Name = c.name
	}
	if c.image != "" {
		cfg.BaseImage = c.image
	}
	cfg.Ports = append(cfg.Ports, c.ports...)
	cfg.Volumes = append(cfg.Volumes, c.volumes...)
	cfg.Dependencies = append(cfg.Dependencies, c.deps...)
	if len(env) > 0 && cfg.Env == nil {
		cfg.Env = map[string]string{}
	}
	for k, v := range env {
		cfg.Env[k] = v
	}
	if c.memory != "" {
		cfg.Memory = c.memory
	}
	if c.cpu != 0 {
		cfg.CPU = c.cpu
	}
	if len(c.command) > 0 {
		cfg.Command = c.command
	}
	if c.restartPolicy != "" {
		cfg.RestartPolicy = model.RestartPolicy(c.restartPolicy)
	}

	return cfg, nil
}
