package lib

import (
	"context"
	"fmt"

	appcopy "github.com/slok/sbxd/internal/app/copy"
	appexec "github.com/slok/sbxd/internal/app/exec"
)

// Exec executes a command inside a running sandbox and waits for it to end.
//
// A single element command is run as a shell command line (pipes, redirections
// and variables work), multiple elements are executed as is. A non-zero exit
// code is not an error, check [ExecResult.ExitCode]. Pass nil opts for defaults.
//
// Returns [ErrNotFound] if the sandbox does not exist, or [ErrNotValid] if
// the sandbox is not running or the command is empty.
func (c *Client) Exec(ctx context.Context, nameOrID string, command []string, opts *ExecOpts) (*ExecResult, error) {
	svc, err := appexec.NewService(appexec.ServiceConfig{
		Runner:   c.executor,
		Uploader: c.files,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := appexec.Request{
		NameOrID: nameOrID,
		Command:  command,
		Opts:     toInternalExecOpts(opts),
	}
	if opts != nil {
		req.Files = opts.Files
	}

	result, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return &ExecResult{
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}, nil
}

// CopyTo uploads a local regular file into a running sandbox. When dstRemote is
// an existing directory the file keeps its name.
//
// Returns [ErrNotFound] if the sandbox or the local file don't exist, or
// [ErrNotValid] if the sandbox is not running.
func (c *Client) CopyTo(ctx context.Context, nameOrID string, srcLocal, dstRemote string) error {
	return c.copy(ctx, srcLocal, nameOrID+":"+dstRemote)
}

// CopyFrom downloads a regular file from a running sandbox to the local host.
//
// Returns [ErrNotFound] if the sandbox or the remote file don't exist, or
// [ErrNotValid] if the sandbox is not running.
func (c *Client) CopyFrom(ctx context.Context, nameOrID string, srcRemote, dstLocal string) error {
	return c.copy(ctx, nameOrID+":"+srcRemote, dstLocal)
}

func (c *Client) copy(ctx context.Context, src, dst string) error {
	svc, err := appcopy.NewService(appcopy.ServiceConfig{
		Transferrer: c.files,
		Logger:      c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	return mapError(svc.Run(ctx, appcopy.Request{Source: src, Destination: dst}))
}
