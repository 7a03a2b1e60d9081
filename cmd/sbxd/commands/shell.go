package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"golang.org/x/term"

	"github.com/slok/sbxd/internal/terminal"
)

type ShellCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID string
	addr     string
	token    string
}

// NewShellCommand returns the shell command.
func NewShellCommand(rootCmd *RootCommand, app *kingpin.Application) *ShellCommand {
	c := &ShellCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("shell", "Open an interactive shell in a running sandbox through a terminal server.")
	c.Cmd.Arg("name-or-id", "Sandbox name or ID.").Required().StringVar(&c.nameOrID)
	c.Cmd.Flag("addr", "Terminal server address (see the serve command).").Default("ws://127.0.0.1:8080").StringVar(&c.addr)
	c.Cmd.Flag("token", "Terminal access token.").Envar("SBXD_TERMINAL_TOKEN").StringVar(&c.token)

	return c
}

func (c ShellCommand) Name() string { return c.Cmd.FullCommand() }

func (c ShellCommand) Run(ctx context.Context) error {
	client, err := terminal.Dial(ctx, terminal.ClientConfig{
		Addr:      c.addr,
		SandboxID: c.nameOrID,
		Token:     c.token,
		Logger:    c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not open shell: %w", err)
	}
	defer client.Close()

	fd := int(os.Stdin.Fd())
	restore := func() {}
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("could not set terminal raw mode: %w", err)
		}
		restore = func() { _ = term.Restore(fd, state) }

		c.sendSize(client, fd)

		winch := make(chan os.Signal, 1)
		signal.Notify(winch, syscall.SIGWINCH)
		defer signal.Stop(winch)
		go func() {
			for range winch {
				c.sendSize(client, fd)
			}
		}()
	}

	exitCode, err := client.Run(ctx, c.rootCmd.Stdin, c.rootCmd.Stdout)
	restore()
	if err != nil {
		return fmt.Errorf("shell session failed: %w", err)
	}
	switch exitCode {
	case 0:
		return nil
	case terminal.UnknownExitCode:
		return ExitCodeError{Code: 1}
	}
	return ExitCodeError{Code: exitCode}
}

func (c ShellCommand) sendSize(client *terminal.Client, fd int) {
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		c.rootCmd.Logger.Debugf("Could not get terminal size: %s", err)
		return
	}
	if err := client.Resize(uint(cols), uint(rows)); err != nil {
		c.rootCmd.Logger.Debugf("Could not send terminal size: %s", err)
	}
}
