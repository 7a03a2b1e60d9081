package lib

import (
	"context"

	"github.com/slok/sbxd/internal/sandbox"
)

// NewWithEngine returns a client on top of a custom engine.
func NewWithEngine(ctx context.Context, eng sandbox.Engine, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}
	return newClient(ctx, eng, cfg)
}
