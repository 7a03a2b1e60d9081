package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox"
)

//go:generate mockery --case underscore --output executormock --outpkg executormock --name Runner --structname MockRunner

// Runner runs shell commands inside running sandboxes.
type Runner interface {
	// Run runs command with sh -c, args are available to the command as positional
	// parameters ($1, $2...) so they never need quoting.
	Run(ctx context.Context, id string, command string, args ...string) (*model.ExecResult, error)
	// RunWithOpts is like Run with stdio sinks, working directory and environment.
	RunWithOpts(ctx context.Context, id string, opts model.ExecOpts, command string, args ...string) (*model.ExecResult, error)
}

// ExecutorConfig is the configuration for the executor.
type ExecutorConfig struct {
	Engine sandbox.Engine
	Logger log.Logger
}

func (c *ExecutorConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "executor.Executor"})
	return nil
}

// Executor runs commands in sandboxes through the engine exec.
type Executor struct {
	engine sandbox.Engine
	logger log.Logger
}

// NewExecutor returns a new executor.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Executor{
		engine: cfg.Engine,
		logger: cfg.Logger,
	}, nil
}

var _ Runner = &Executor{}

func (e *Executor) Run(ctx context.Context, id string, command string, args ...string) (*model.ExecResult, error) {
	return e.RunWithOpts(ctx, id, model.ExecOpts{}, command, args...)
}

func (e *Executor) RunWithOpts(ctx context.Context, id string, opts model.ExecOpts, command string, args ...string) (*model.ExecResult, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("command cannot be empty: %w", model.ErrNotValid)
	}

	sb, err := e.engine.Status(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox: %w", err)
	}
	if sb.Status != model.SandboxStatusRunning {
		return nil, fmt.Errorf("sandbox %s is not running (status: %s): %w", sb.Name, sb.Status, model.ErrNotValid)
	}

	// $0 is set to sh so the user args start at $1.
	cmd := append([]string{"sh", "-c", command, "sh"}, args...)
	result, err := e.engine.Exec(ctx, sb.ID, cmd, opts)
	if err != nil {
		return nil, fmt.Errorf("could not execute command: %w", err)
	}

	e.logger.Debugf("Executed command in sandbox %s (%s): exit code %d", sb.Name, sb.ID, result.ExitCode)

	return result, nil
}

// DefaultFailurePatterns are the stderr fragments that mark an install script
// as failed even when it exited with code 0.
var DefaultFailurePatterns = []string{"Unable to locate package", "not found"}

// CheckFailure returns ErrExecutionFailed when the command exited with a
// non-zero code or its stderr contains any of the failure patterns.
func CheckFailure(res *model.ExecResult, failurePatterns ...string) error {
	if res == nil {
		return fmt.Errorf("missing execution result: %w", model.ErrExecutionFailed)
	}
	if res.ExitCode != 0 {
		if msg := lastLine(res.Stderr); msg != "" {
			return fmt.Errorf("command exited with code %d (%s): %w", res.ExitCode, msg, model.ErrExecutionFailed)
		}
		return fmt.Errorf("command exited with code %d: %w", res.ExitCode, model.ErrExecutionFailed)
	}
	for _, p := range failurePatterns {
		if p != "" && strings.Contains(res.Stderr, p) {
			return fmt.Errorf("command output matches failure pattern %q: %w", p, model.ErrExecutionFailed)
		}
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
