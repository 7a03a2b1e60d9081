package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/sbxd/internal/config"
	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/files"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/metrics"
	"github.com/slok/sbxd/internal/printer"
	"github.com/slok/sbxd/internal/sandbox/docker"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command is a CLI subcommand registered on the application.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand has the global flags and the process IO shared by every command.
type RootCommand struct {
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DockerHost string
	ConfigPath string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand registers the global flags on the application.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	r := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&r.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&r.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&r.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&r.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("docker-host", "Docker daemon address, defaults to DOCKER_HOST or the local socket.").Envar("SBXD_DOCKER_HOST").StringVar(&r.DockerHost)
	app.Flag("config", "Path to the sbxd configuration file.").
		Envar("SBXD_CONFIG").
		Default(filepath.Join(homedir.HomeDir(), ".sbxd", "config.yaml")).
		StringVar(&r.ConfigPath)

	return r
}

// OwnsStdout returns true for the commands whose stdout is machine or terminal
// output, logs are muted for them unless debug is enabled.
func OwnsStdout(cmdName string) bool {
	switch cmdName {
	case "list", "status", "shell", "fs ls", "fs cat", "fs stat", "fs find":
		return true
	}
	return false
}

func formatFlag(cmd *kingpin.CmdClause, dst *string) {
	cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(dst, formatTable, formatJSON)
}

func (r *RootCommand) printer(format string) printer.Printer {
	if format == formatJSON {
		return printer.NewJSONPrinter(r.Stdout)
	}
	return printer.NewTablePrinter(r.Stdout)
}

// runtime groups the dependencies built on the Docker client of a command run.
type runtime struct {
	engine   *docker.Engine
	executor *executor.Executor
	files    *files.Service
	close    func() error
}

func (r *RootCommand) newRuntime(rec metrics.Recorder) (*runtime, error) {
	cli, err := docker.NewClient(r.DockerHost)
	if err != nil {
		return nil, err
	}

	rt := &runtime{close: cli.Close}
	rt.engine, err = docker.NewEngine(docker.EngineConfig{Client: cli, MetricsRecorder: rec, Logger: r.Logger})
	if err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("could not create engine: %w", err)
	}

	rt.executor, err = executor.NewExecutor(executor.ExecutorConfig{Engine: rt.engine, Logger: r.Logger})
	if err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("could not create executor: %w", err)
	}

	rt.files, err = files.NewService(files.ServiceConfig{Runner: rt.executor, Archiver: rt.engine, Logger: r.Logger})
	if err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("could not create files service: %w", err)
	}

	return rt, nil
}

// loadConfig reads the sbxd configuration file, a missing file yields the defaults.
func (r *RootCommand) loadConfig(ctx context.Context) (*config.Config, error) {
	dir, file := filepath.Split(r.ConfigPath)
	if dir == "" {
		dir = "."
	}

	cfg, err := config.NewConfigYAMLRepository(os.DirFS(dir)).GetConfig(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration %s: %w", r.ConfigPath, err)
	}
	return cfg, nil
}

// withRuntime calls fn with a runtime that is closed once fn returns.
func (r *RootCommand) withRuntime(fn func(rt *runtime) error) error {
	rt, err := r.newRuntime(metrics.Noop)
	if err != nil {
		return err
	}
	defer func() { _ = rt.close() }()

	return fn(rt)
}

// ExitCodeError carries the exit code of a command run inside a sandbox so
// the process can end with it.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string { return fmt.Sprintf("command exited with code %d", e.Code) }
