package update

import (
	"context"
	"fmt"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox"
)

// ServiceConfig is the configuration for the update service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Update"})

	return nil
}

// Service updates the mutable settings of a sandbox.
type Service struct {
	engine sandbox.Engine
	logger log.Logger
}

// NewService creates a new update service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine: cfg.Engine,
		logger: cfg.Logger,
	}, nil
}

// Request represents the update request parameters.
type Request struct {
	// NameOrID is the sandbox name or ID to update.
	NameOrID string
	Update   model.SandboxUpdate
}

// Run validates the partial update, applies it and returns the updated sandbox.
func (s *Service) Run(ctx context.Context, req Request) (*model.Sandbox, error) {
	if err := req.Update.Validate(); err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}

	sb, err := s.engine.Status(ctx, req.NameOrID)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox: %w", err)
	}

	if err := s.engine.Update(ctx, sb.ID, req.Update); err != nil {
		return nil, fmt.Errorf("could not update sandbox: %w", err)
	}

	updated, err := s.engine.Status(ctx, sb.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get updated sandbox: %w", err)
	}

	s.logger.Infof("updated sandbox: %s (ID: %s)", updated.Name, updated.ID)
	return updated, nil
}
