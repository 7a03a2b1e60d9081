package remove

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox"
)

// ServiceConfig is the configuration for the remove service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Remove"})

	return nil
}

// Service removes a sandbox.
type Service struct {
	engine sandbox.Engine
	logger log.Logger
}

// NewService creates a new remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine: cfg.Engine,
		logger: cfg.Logger,
	}, nil
}

// Request represents the remove request parameters.
type Request struct {
	// NameOrID is the sandbox name or ID to remove.
	NameOrID string
	// Force removes a running sandbox without stopping it first.
	Force bool
	// StopGracePeriod is used when a running sandbox is stopped before removal.
	// Defaults to model.DefaultStopGracePeriod, model.StopImmediately kills it.
	StopGracePeriod time.Duration
}

// Run removes a sandbox by name or ID. A running sandbox is stopped gracefully
// first unless the removal is forced.
func (s *Service) Run(ctx context.Context, req Request) (*model.Sandbox, error) {
	s.logger.Debugf("removing sandbox: %s", req.NameOrID)

	sb, err := s.engine.Status(ctx, req.NameOrID)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox: %w", err)
	}

	if sb.Status == model.SandboxStatusRunning && !req.Force {
		if err := s.engine.Stop(ctx, sb.ID, model.GracePeriodOrDefault(req.StopGracePeriod)); err != nil {
			return nil, fmt.Errorf("could not stop sandbox before removal: %w", err)
		}
		now := time.Now().UTC()
		sb.Status = model.SandboxStatusStopped
		sb.StoppedAt = &now
	}

	if err := s.engine.Remove(ctx, sb.ID, req.Force); err != nil {
		return nil, fmt.Errorf("could not remove sandbox: %w", err)
	}

	s.logger.Infof("removed sandbox: %s (ID: %s)", sb.Name, sb.ID)
	return sb, nil
}
