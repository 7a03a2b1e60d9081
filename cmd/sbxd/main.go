package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/slok/sbxd/cmd/sbxd/commands"
	"github.com/slok/sbxd/internal/log"
	loglogrus "github.com/slok/sbxd/internal/log/logrus"
)

// Version is set at build time with ldflags.
var Version = "dev"

func registerCommands(rootCmd *commands.RootCommand, app *kingpin.Application) map[string]commands.Command {
	cmds := []commands.Command{
		commands.NewCreateCommand(rootCmd, app),
		commands.NewListCommand(rootCmd, app),
		commands.NewStatusCommand(rootCmd, app),
		commands.NewStartCommand(rootCmd, app),
		commands.NewStopCommand(rootCmd, app),
		commands.NewRestartCommand(rootCmd, app),
		commands.NewUpdateCommand(rootCmd, app),
		commands.NewRemoveCommand(rootCmd, app),
		commands.NewExecCommand(rootCmd, app),
		commands.NewCpCommand(rootCmd, app),
		commands.NewServeCommand(rootCmd, app),
		commands.NewShellCommand(rootCmd, app),
	}
	cmds = append(cmds, commands.NewFsCommands(rootCmd, app)...)

	idx := make(map[string]commands.Command, len(cmds))
	for _, c := range cmds {
		idx[c.Name()] = c
	}
	return idx
}

// Run parses the arguments and runs the selected command until it ends or a
// termination signal is received.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("sbxd", "Docker backed development sandboxes with dependency provisioning.")
	app.Version(Version)
	app.DefaultEnvars()

	rootCmd := commands.NewRootCommand(app)
	cmds := registerCommands(rootCmd, app)

	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	rootCmd.Stdin, rootCmd.Stdout, rootCmd.Stderr = stdin, stdout, stderr
	if commands.OwnsStdout(cmdName) && !rootCmd.Debug {
		rootCmd.NoLog = true
	}
	rootCmd.Logger = newLogger(*rootCmd)

	var g run.Group

	// Termination signals end the group, the command context is cancelled on interrupt.
	{
		sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		g.Add(
			func() error {
				<-sigCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) { stop() },
		)
	}

	{
		cmdCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				if err := cmds[cmdName].Run(cmdCtx); err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) { cancel() },
		)
	}

	return g.Run()
}

func newLogger(rootCmd commands.RootCommand) log.Logger {
	if rootCmd.NoLog {
		return log.Noop
	}

	l := logrus.New()
	l.Out = rootCmd.Stderr
	if rootCmd.Debug {
		l.SetLevel(logrus.DebugLevel)
	}

	switch rootCmd.LoggerType {
	case commands.LoggerTypeJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !rootCmd.NoColor,
			DisableColors: rootCmd.NoColor,
		})
	}

	logger := loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(log.Kv{"version": Version})
	logger.Debugf("Debug level is enabled")

	return logger
}

func main() {
	err := Run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	// The exit code of a sandbox command is forwarded as is.
	var exitErr commands.ExitCodeError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
