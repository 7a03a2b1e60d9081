package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/sbxd/internal/app/lifecycle"
	"github.com/slok/sbxd/internal/model"
)

// InspectCommand prints sandbox state without changing it (list and status).
type InspectCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
	run    func(ctx context.Context, svc *lifecycle.Service) error
}

func (c InspectCommand) Name() string { return c.Cmd.FullCommand() }

func (c *InspectCommand) Run(ctx context.Context) error {
	return c.rootCmd.withRuntime(func(rt *runtime) error {
		svc, err := lifecycle.NewService(lifecycle.ServiceConfig{Engine: rt.engine, Logger: c.rootCmd.Logger})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}
		return c.run(ctx, svc)
	})
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *InspectCommand {
	c := &InspectCommand{rootCmd: rootCmd}
	c.Cmd = app.Command("list", "List sandboxes.").Alias("ls")
	formatFlag(c.Cmd, &c.format)

	var (
		all    bool
		status string
	)
	c.Cmd.Flag("all", "Include the sandboxes that are not running.").Short('a').BoolVar(&all)
	c.Cmd.Flag("status", "Filter by status (pending, running, stopped, failed).").StringVar(&status)

	c.run = func(ctx context.Context, svc *lifecycle.Service) error {
		req := lifecycle.ListRequest{All: all}
		if status != "" {
			st, err := parseStatusFilter(status)
			if err != nil {
				return err
			}
			req.Status = &st
		}

		sandboxes, err := svc.List(ctx, req)
		if err != nil {
			return err
		}
		return rootCmd.printer(c.format).PrintList(sandboxes)
	}

	return c
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *InspectCommand {
	c := &InspectCommand{rootCmd: rootCmd}
	c.Cmd = app.Command("status", "Show detailed sandbox status.")
	formatFlag(c.Cmd, &c.format)

	var nameOrID string
	c.Cmd.Arg("name-or-id", "Sandbox name or ID.").Required().StringVar(&nameOrID)

	c.run = func(ctx context.Context, svc *lifecycle.Service) error {
		sb, err := svc.Status(ctx, nameOrID)
		if err != nil {
			return err
		}
		return rootCmd.printer(c.format).PrintStatus(*sb)
	}

	return c
}

func parseStatusFilter(s string) (model.SandboxStatus, error) {
	st := model.SandboxStatus(strings.ToLower(s))
	switch st {
	case model.SandboxStatusPending, model.SandboxStatusRunning, model.SandboxStatusStopped, model.SandboxStatusFailed:
		return st, nil
	}
	return "", fmt.Errorf("invalid status filter %q, use one of pending, running, stopped or failed: %w", s, model.ErrNotValid)
}
