package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/sbxd/internal/app/lifecycle"
	"github.com/slok/sbxd/internal/app/remove"
	"github.com/slok/sbxd/internal/model"
)

// LifecycleCommand moves a single sandbox to another state: start, stop, restart or rm.
type LifecycleCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID string
	grace    time.Duration
	force    bool

	transition func(ctx context.Context, c *LifecycleCommand, rt *runtime) (*model.Sandbox, error)
	report     func(sb *model.Sandbox) string
}

func newLifecycleCommand(rootCmd *RootCommand, app *kingpin.Application, name, help string) *LifecycleCommand {
	c := &LifecycleCommand{rootCmd: rootCmd}
	c.Cmd = app.Command(name, help)
	c.Cmd.Arg("name-or-id", "Sandbox name or ID.").Required().StringVar(&c.nameOrID)
	return c
}

func (c *LifecycleCommand) graceFlag() {
	c.Cmd.Flag("time", "Time to wait for the sandbox to stop before killing it, a negative value (--time=-1s) kills it right away.").
		Short('t').
		Default(model.DefaultStopGracePeriod.String()).
		DurationVar(&c.grace)
}

func (c LifecycleCommand) Name() string { return c.Cmd.FullCommand() }

func (c *LifecycleCommand) Run(ctx context.Context) error {
	return c.rootCmd.withRuntime(func(rt *runtime) error {
		sb, err := c.transition(ctx, c, rt)
		if err != nil {
			return fmt.Errorf("could not %s sandbox: %w", c.Cmd.FullCommand(), err)
		}

		fmt.Fprintln(c.rootCmd.Stdout, c.report(sb))
		return nil
	})
}

// NewStartCommand returns the start command.
func NewStartCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	c := newLifecycleCommand(rootCmd, app, "start", "Start a pending or stopped sandbox.")
	c.transition = func(ctx context.Context, c *LifecycleCommand, rt *runtime) (*model.Sandbox, error) {
		svc, err := lifecycle.NewService(lifecycle.ServiceConfig{Engine: rt.engine, Logger: c.rootCmd.Logger})
		if err != nil {
			return nil, err
		}
		return svc.Start(ctx, c.nameOrID)
	}
	c.report = func(sb *model.Sandbox) string { return fmt.Sprintf("Sandbox %s started (status: %s)", sb.Name, sb.Status) }
	return c
}

// NewStopCommand returns the stop command.
func NewStopCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	c := newLifecycleCommand(rootCmd, app, "stop", "Stop a running sandbox.")
	c.graceFlag()
	c.transition = func(ctx context.Context, c *LifecycleCommand, rt *runtime) (*model.Sandbox, error) {
		svc, err := lifecycle.NewService(lifecycle.ServiceConfig{Engine: rt.engine, Logger: c.rootCmd.Logger})
		if err != nil {
			return nil, err
		}
		return svc.Stop(ctx, c.nameOrID, c.grace)
	}
	c.report = func(sb *model.Sandbox) string { return fmt.Sprintf("Sandbox %s stopped", sb.Name) }
	return c
}

// NewRestartCommand returns the restart command.
func NewRestartCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	c := newLifecycleCommand(rootCmd, app, "restart", "Restart a sandbox.")
	c.graceFlag()
	c.transition = func(ctx context.Context, c *LifecycleCommand, rt *runtime) (*model.Sandbox, error) {
		svc, err := lifecycle.NewService(lifecycle.ServiceConfig{Engine: rt.engine, Logger: c.rootCmd.Logger})
		if err != nil {
			return nil, err
		}
		return svc.Restart(ctx, c.nameOrID, c.grace)
	}
	c.report = func(sb *model.Sandbox) string { return fmt.Sprintf("Sandbox %s restarted (status: %s)", sb.Name, sb.Status) }
	return c
}

// NewRemoveCommand returns the rm command.
func NewRemoveCommand(rootCmd *RootCommand, app *kingpin.Application) *LifecycleCommand {
	c := newLifecycleCommand(rootCmd, app, "rm", "Remove a sandbox, a running one is stopped first.")
	c.Cmd.Flag("force", "Kill and remove a running sandbox without stopping it.").BoolVar(&c.force)
	c.transition = func(ctx context.Context, c *LifecycleCommand, rt *runtime) (*model.Sandbox, error) {
		svc, err := remove.NewService(remove.ServiceConfig{Engine: rt.engine, Logger: c.rootCmd.Logger})
		if err != nil {
			return nil, err
		}
		return svc.Run(ctx, remove.Request{NameOrID: c.nameOrID, Force: c.force})
	}
	c.report = func(sb *model.Sandbox) string { return fmt.Sprintf("Sandbox %s removed", sb.Name) }
	return c
}
