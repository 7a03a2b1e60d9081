package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox"
)

// Exec executes a command inside a running Docker container sandbox.
//
// The runtime doesn't send the exit code with the output, so the exec is
// inspected once the output stream has ended. Cancelling ctx closes the
// stream, the command may keep running inside the sandbox.
func (e *Engine) Exec(ctx context.Context, id string, command []string, opts model.ExecOpts) (*model.ExecResult, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("command cannot be empty: %w", model.ErrNotValid)
	}

	start := time.Now()
	exitCode := -1
	defer func() {
		e.metrics.ObserveCommandExecution(ctx, exitCode, time.Since(start))
	}()

	e.logger.Debugf("Executing command in sandbox %s: %v", id, command)

	execID, hijacked, err := e.startExec(ctx, id, container.ExecOptions{
		Cmd:          command,
		AttachStdin:  opts.Stdin != nil,
		AttachStdout: true,
		AttachStderr: true,
		Tty:          opts.Tty,
		WorkingDir:   opts.WorkingDir,
		Env:          envSlice(opts.Env),
	})
	if err != nil {
		return nil, err
	}
	defer hijacked.Close()

	// The stdin copy is not joined, Exec returns when the output stream ends.
	// A copy blocked reading a stdin that never ends (a terminal) finishes at
	// its next read, because the write to the closed stream fails.
	if opts.Stdin != nil {
		go func() {
			_, _ = io.Copy(hijacked.Conn, opts.Stdin)
			_ = hijacked.CloseWrite()
		}()
	}

	// Both channels are written from the same goroutine so the combined
	// output keeps the order in which the frames arrived.
	var combined, stdout, stderr bytes.Buffer
	stdoutWriters := []io.Writer{&stdout, &combined}
	stderrWriters := []io.Writer{&stderr, &combined}
	if opts.Stdout != nil {
		stdoutWriters = append(stdoutWriters, opts.Stdout)
	}
	if opts.Stderr != nil {
		stderrWriters = append(stderrWriters, opts.Stderr)
	}
	stdoutW := io.MultiWriter(stdoutWriters...)
	stderrW := io.MultiWriter(stderrWriters...)

	streamDone := make(chan error, 1)
	go func() {
		var err error
		if opts.Tty {
			// With a TTY the runtime sends a raw stream without frame headers.
			_, err = io.Copy(stdoutW, hijacked.Reader)
		} else {
			_, err = stdcopy.StdCopy(stdoutW, stderrW, hijacked.Reader)
		}
		streamDone <- err
	}()

	select {
	case err := <-streamDone:
		if err != nil {
			return nil, fmt.Errorf("could not read exec output stream in sandbox %s: %w", id, err)
		}
	case <-ctx.Done():
		hijacked.Close()
		<-streamDone
		return nil, fmt.Errorf("exec in sandbox %s cancelled: %w", id, ctx.Err())
	}

	var inspect container.ExecInspect
	err = e.measure(ctx, "exec_inspect", func() (err error) {
		inspect, err = e.client.ContainerExecInspect(ctx, execID)
		return err
	})
	if err != nil {
		return nil, classifyErr("could not inspect exec in sandbox", id, err)
	}
	exitCode = inspect.ExitCode

	e.logger.Debugf("Command in sandbox %s exited with code %d", id, exitCode)

	return &model.ExecResult{
		ExitCode: inspect.ExitCode,
		Output:   combined.String(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

// startExec creates an exec session and attaches to its stream.
func (e *Engine) startExec(ctx context.Context, id string, opts container.ExecOptions) (string, types.HijackedResponse, error) {
	var created container.ExecCreateResponse
	err := e.measure(ctx, "exec_create", func() (err error) {
		created, err = e.client.ContainerExecCreate(ctx, id, opts)
		return err
	})
	if err != nil {
		return "", types.HijackedResponse{}, classifyErr("could not create exec in sandbox", id, err)
	}

	var hijacked types.HijackedResponse
	err = e.measure(ctx, "exec_attach", func() (err error) {
		hijacked, err = e.client.ContainerExecAttach(ctx, created.ID, container.ExecAttachOptions{Tty: opts.Tty})
		return err
	})
	if err != nil {
		return "", types.HijackedResponse{}, classifyErr("could not attach to exec in sandbox", id, err)
	}

	return created.ID, hijacked, nil
}

// Attach starts an interactive command with a TTY and returns its live session.
func (e *Engine) Attach(ctx context.Context, id string, command []string) (sandbox.TTYSession, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("command cannot be empty: %w", model.ErrNotValid)
	}

	execID, hijacked, err := e.startExec(ctx, id, container.ExecOptions{
		Cmd:          command,
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
		Tty:          true,
		Env:          []string{"TERM=xterm-256color"},
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debugf("Attached interactive exec %s in sandbox %s", execID, id)

	return &ttySession{
		client:   e.client,
		execID:   execID,
		hijacked: hijacked,
	}, nil
}

type ttySession struct {
	client   DockerClient
	execID   string
	hijacked types.HijackedResponse
}

func (t *ttySession) Read(p []byte) (int, error)  { return t.hijacked.Reader.Read(p) }
func (t *ttySession) Write(p []byte) (int, error) { return t.hijacked.Conn.Write(p) }

func (t *ttySession) Close() error {
	t.hijacked.Close()
	return nil
}

func (t *ttySession) Resize(ctx context.Context, cols, rows uint) error {
	err := t.client.ContainerExecResize(ctx, t.execID, container.ResizeOptions{Height: rows, Width: cols})
	if err != nil {
		return classifyErr("could not resize exec", t.execID, err)
	}
	return nil
}

func (t *ttySession) ExitCode(ctx context.Context) (int, error) {
	inspect, err := t.client.ContainerExecInspect(ctx, t.execID)
	if err != nil {
		return -1, classifyErr("could not inspect exec", t.execID, err)
	}
	if inspect.Running {
		return -1, fmt.Errorf("exec %s is still running: %w", t.execID, model.ErrNotValid)
	}
	return inspect.ExitCode, nil
}
