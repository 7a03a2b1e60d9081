package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/sbxd/internal/app/copy"
)

// CpCommand copies a single file between the host and a sandbox, the sandbox
// side is written as `name-or-id:/path`.
type CpCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	src string
	dst string
}

// NewCpCommand returns the cp command.
func NewCpCommand(rootCmd *RootCommand, app *kingpin.Application) *CpCommand {
	c := &CpCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("cp", "Copy a file between host and sandbox.")
	c.Cmd.Arg("src", "Host path or name-or-id:/path.").Required().StringVar(&c.src)
	c.Cmd.Arg("dst", "Host path or name-or-id:/path.").Required().StringVar(&c.dst)

	return c
}

func (c CpCommand) Name() string { return c.Cmd.FullCommand() }

func (c CpCommand) Run(ctx context.Context) error {
	if _, err := copy.ParseTransfer(c.src, c.dst); err != nil {
		return err
	}

	return c.rootCmd.withRuntime(func(rt *runtime) error {
		svc, err := copy.NewService(copy.ServiceConfig{Transferrer: rt.files, Logger: c.rootCmd.Logger})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		if err := svc.Run(ctx, copy.Request{Source: c.src, Destination: c.dst}); err != nil {
			return fmt.Errorf("could not copy %s to %s: %w", c.src, c.dst, err)
		}
		return nil
	})
}
