// Package lifecycle has the read and state transition operations of existing
// sandboxes. Creation, update and removal have their own services.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox"
)

// ServiceConfig is the configuration for the lifecycle service.
type ServiceConfig struct {
	Engine sandbox.Engine
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Lifecycle"})

	return nil
}

// Service inspects, lists, starts, stops and restarts sandboxes.
type Service struct {
	engine sandbox.Engine
	logger log.Logger
}

// NewService returns a new lifecycle service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{engine: cfg.Engine, logger: cfg.Logger}, nil
}

// Status returns the current state of a sandbox.
func (s *Service) Status(ctx context.Context, nameOrID string) (*model.Sandbox, error) {
	sb, err := s.engine.Status(ctx, nameOrID)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox status: %w", err)
	}
	return sb, nil
}

// ListRequest selects the sandboxes to list.
type ListRequest struct {
	// All includes the sandboxes that are not running.
	All bool
	// Status keeps only the sandboxes in this state when set.
	Status *model.SandboxStatus
}

// List returns the managed sandboxes, by default only the running ones.
func (s *Service) List(ctx context.Context, req ListRequest) ([]model.Sandbox, error) {
	// Any state other than running needs the stopped containers from the runtime.
	includeStopped := req.All || (req.Status != nil && *req.Status != model.SandboxStatusRunning)

	sandboxes, err := s.engine.List(ctx, includeStopped)
	if err != nil {
		return nil, fmt.Errorf("could not list sandboxes: %w", err)
	}

	if req.Status == nil {
		return sandboxes, nil
	}

	res := make([]model.Sandbox, 0, len(sandboxes))
	for _, sb := range sandboxes {
		if sb.Status == *req.Status {
			res = append(res, sb)
		}
	}
	s.logger.Debugf("%d of %d sandboxes in %s state", len(res), len(sandboxes), *req.Status)

	return res, nil
}

// Start runs a pending or stopped sandbox and returns its refreshed state.
func (s *Service) Start(ctx context.Context, nameOrID string) (*model.Sandbox, error) {
	sb, err := s.engine.Status(ctx, nameOrID)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox: %w", err)
	}

	switch sb.Status {
	case model.SandboxStatusPending, model.SandboxStatusStopped:
	default:
		return nil, fmt.Errorf("sandbox %s is %s, only pending or stopped sandboxes can be started: %w", sb.Name, sb.Status, model.ErrNotValid)
	}

	if err := s.engine.Start(ctx, sb.ID); err != nil {
		return nil, fmt.Errorf("could not start sandbox: %w", err)
	}
	s.logger.Infof("Sandbox %s started", sb.Name)

	return s.refresh(ctx, sb.ID)
}

// Stop stops a running sandbox, the sandbox is killed if it hasn't ended after
// the grace period. A zero grace uses model.DefaultStopGracePeriod and
// model.StopImmediately kills it right away.
func (s *Service) Stop(ctx context.Context, nameOrID string, grace time.Duration) (*model.Sandbox, error) {
	sb, err := s.engine.Status(ctx, nameOrID)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox: %w", err)
	}

	if sb.Status != model.SandboxStatusRunning {
		return nil, fmt.Errorf("sandbox %s is %s, only running sandboxes can be stopped: %w", sb.Name, sb.Status, model.ErrNotValid)
	}

	if err := s.engine.Stop(ctx, sb.ID, model.GracePeriodOrDefault(grace)); err != nil {
		return nil, fmt.Errorf("could not stop sandbox: %w", err)
	}
	s.logger.Infof("Sandbox %s stopped", sb.Name)

	stoppedAt := time.Now().UTC()
	sb.Status = model.SandboxStatusStopped
	sb.StoppedAt = &stoppedAt

	return sb, nil
}

// Restart stops and starts a sandbox again, a stopped sandbox is just started.
func (s *Service) Restart(ctx context.Context, nameOrID string, grace time.Duration) (*model.Sandbox, error) {
	sb, err := s.engine.Status(ctx, nameOrID)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox: %w", err)
	}

	if err := s.engine.Restart(ctx, sb.ID, model.GracePeriodOrDefault(grace)); err != nil {
		return nil, fmt.Errorf("could not restart sandbox: %w", err)
	}
	s.logger.Infof("Sandbox %s restarted", sb.Name)

	return s.refresh(ctx, sb.ID)
}

func (s *Service) refresh(ctx context.Context, id string) (*model.Sandbox, error) {
	sb, err := s.engine.Status(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox state after the transition: %w", err)
	}
	return sb, nil
}
