package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/sbxd/internal/app/create"
	"github.com/slok/sbxd/internal/app/lifecycle"
	"github.com/slok/sbxd/internal/app/remove"
	"github.com/slok/sbxd/internal/app/update"
	"github.com/slok/sbxd/internal/model"
)

// CreateSandbox creates and starts a new sandbox, then installs its
// dependencies and uploads its files.
//
// When the provisioning fails the sandbox is left running and is returned
// together with an error matching [ErrProvisioning].
func (c *Client) CreateSandbox(ctx context.Context, opts CreateSandboxOpts) (*Sandbox, error) {
	svc, err := create.NewService(create.ServiceConfig{
		Engine:          c.engine,
		Runner:          c.executor,
		Copier:          c.files,
		Catalog:         c.config.Catalog,
		FailurePatterns: c.config.FailurePatterns,
		Stdout:          c.output,
		Stderr:          c.output,
		Logger:          c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	sb, err := svc.Create(ctx, create.CreateOptions{
		Config: toInternalSandboxConfig(opts),
		Files:  toInternalCopyPaths(opts.Files),
	})
	if sb == nil {
		return nil, mapError(err)
	}

	result := fromInternalSandbox(*sb)
	return &result, mapError(err)
}

// GetSandbox returns the current state of a sandbox by name or ID.
func (c *Client) GetSandbox(ctx context.Context, nameOrID string) (*Sandbox, error) {
	return public(c.lifecycle.Status(ctx, nameOrID))
}

// ListSandboxes returns the sandboxes managed by sbxd. Pass nil opts to list
// only the running ones.
func (c *Client) ListSandboxes(ctx context.Context, opts *ListSandboxesOpts) ([]Sandbox, error) {
	sbs, err := c.lifecycle.List(ctx, lifecycle.ListRequest{
		All:    opts != nil && opts.All,
		Status: toInternalStatusFilter(opts),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalSandboxList(sbs), nil
}

// StartSandbox starts a stopped sandbox.
func (c *Client) StartSandbox(ctx context.Context, nameOrID string) (*Sandbox, error) {
	return public(c.lifecycle.Start(ctx, nameOrID))
}

// StopSandbox stops a running sandbox. The sandbox is killed when it doesn't
// end before the grace period. A zero grace uses the default grace period
// (10s), a negative one kills it right away. Sub-second periods are rounded
// up to one second.
func (c *Client) StopSandbox(ctx context.Context, nameOrID string, grace time.Duration) (*Sandbox, error) {
	return public(c.lifecycle.Stop(ctx, nameOrID, grace))
}

// RestartSandbox stops and starts a sandbox again, grace works as in StopSandbox.
func (c *Client) RestartSandbox(ctx context.Context, nameOrID string, grace time.Duration) (*Sandbox, error) {
	return public(c.lifecycle.Restart(ctx, nameOrID, grace))
}

// UpdateSandbox changes the restart policy and resource limits of a sandbox
// without recreating it.
func (c *Client) UpdateSandbox(ctx context.Context, nameOrID string, opts UpdateSandboxOpts) (*Sandbox, error) {
	svc, err := update.NewService(update.ServiceConfig{Engine: c.engine, Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	return public(svc.Run(ctx, update.Request{NameOrID: nameOrID, Update: toInternalUpdate(opts)}))
}

// RemoveSandbox removes a sandbox. A running sandbox is stopped gracefully
// first, unless force is set.
func (c *Client) RemoveSandbox(ctx context.Context, nameOrID string, force bool) (*Sandbox, error) {
	svc, err := remove.NewService(remove.ServiceConfig{Engine: c.engine, Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	return public(svc.Run(ctx, remove.Request{NameOrID: nameOrID, Force: force}))
}

func public(sb *model.Sandbox, err error) (*Sandbox, error) {
	if err != nil {
		return nil, mapError(err)
	}
	res := fromInternalSandbox(*sb)
	return &res, nil
}
