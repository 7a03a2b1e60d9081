package metrics

import (
	"context"
	"time"
)

// Recorder knows how to record the metrics of the sandbox engine.
type Recorder interface {
	// ObserveRuntimeOperation measures a call against the container runtime.
	ObserveRuntimeOperation(ctx context.Context, op string, success bool, t time.Duration)
	// ObserveCommandExecution measures a command executed inside a sandbox,
	// exitCode is -1 when the command could not be run.
	ObserveCommandExecution(ctx context.Context, exitCode int, t time.Duration)
	// AddTerminalSessions changes the number of open terminal sessions.
	AddTerminalSessions(ctx context.Context, delta int)
}

// Noop is a recorder that doesn't record anything.
var Noop Recorder = noop(0)

type noop int

func (noop) ObserveRuntimeOperation(_ context.Context, _ string, _ bool, _ time.Duration) {}
func (noop) ObserveCommandExecution(_ context.Context, _ int, _ time.Duration)            {}
func (noop) AddTerminalSessions(_ context.Context, _ int)                                 {}
