package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/sbxd/internal/app/exec"
	"github.com/slok/sbxd/internal/model"
)

// ExecCommand runs a command inside a sandbox streaming its output, the
// process exits with the command exit code.
type ExecCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID    string
	argv        []string
	workdir     string
	env         []string
	uploads     []string
	tty         bool
	interactive bool
}

// NewExecCommand returns the exec command.
func NewExecCommand(rootCmd *RootCommand, app *kingpin.Application) *ExecCommand {
	c := &ExecCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("exec", "Execute a command in a running sandbox.")
	c.Cmd.Arg("name-or-id", "Sandbox name or ID.").Required().StringVar(&c.nameOrID)
	c.Cmd.Arg("command", "Command to run after --, a single argument is run as a shell line.").Required().StringsVar(&c.argv)
	c.Cmd.Flag("workdir", "Working directory inside the sandbox.").Short('w').StringVar(&c.workdir)
	c.Cmd.Flag("env", "Environment variable as KEY=VALUE, or KEY to take it from the host. Repeatable.").Short('e').StringsVar(&c.env)
	c.Cmd.Flag("file", "Host file uploaded to the working directory before running. Repeatable.").StringsVar(&c.uploads)
	c.Cmd.Flag("tty", "Allocate a pseudo-TTY.").Short('t').BoolVar(&c.tty)
	c.Cmd.Flag("interactive", "Forward the standard input.").Short('i').BoolVar(&c.interactive)

	return c
}

func (c ExecCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExecCommand) Run(ctx context.Context) error {
	env, err := parseEnvSpecs(c.env)
	if err != nil {
		return fmt.Errorf("invalid --env value: %w", err)
	}

	opts := model.ExecOpts{
		WorkingDir: c.workdir,
		Env:        env,
		Stdout:     c.rootCmd.Stdout,
		Stderr:     c.rootCmd.Stderr,
		Tty:        c.tty,
	}
	if c.interactive {
		opts.Stdin = c.rootCmd.Stdin
	}

	var res *model.ExecResult
	err = c.rootCmd.withRuntime(func(rt *runtime) error {
		svc, err := exec.NewService(exec.ServiceConfig{Runner: rt.executor, Uploader: rt.files, Logger: c.rootCmd.Logger})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		res, err = svc.Run(ctx, exec.Request{NameOrID: c.nameOrID, Command: c.argv, Opts: opts, Files: c.uploads})
		return err
	})
	if err != nil {
		return fmt.Errorf("could not execute command: %w", err)
	}

	if res.ExitCode != 0 {
		return ExitCodeError{Code: res.ExitCode}
	}
	return nil
}
