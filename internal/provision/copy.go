package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
)

// CopyPath is a host file uploaded into the sandbox after the dependencies are installed.
type CopyPath struct {
	SrcLocal  string
	DstRemote string
}

// ParseCopyPath parses `localPath:sandboxPath`.
func ParseCopyPath(s string) (CopyPath, error) {
	src, dst, ok := strings.Cut(s, ":")
	if !ok || src == "" || !strings.HasPrefix(dst, "/") {
		return CopyPath{}, fmt.Errorf("invalid copy path %q, expected 'localPath:/absolute/sandbox/path': %w", s, model.ErrNotValid)
	}
	return CopyPath{SrcLocal: src, DstRemote: dst}, nil
}

// CopyPathConfig is the configuration for creating a CopyPath provisioner.
type CopyPathConfig struct {
	// Accessor provides sandbox operations. Required.
	Accessor SandboxAccessor
	Path     CopyPath
	// Logger is optional, defaults to log.Noop.
	Logger log.Logger
}

func (c *CopyPathConfig) defaults() error {
	if c.Accessor == nil {
		return fmt.Errorf("accessor is required")
	}
	if c.Path.SrcLocal == "" {
		return fmt.Errorf("src local path is required")
	}
	if c.Path.DstRemote == "" {
		return fmt.Errorf("dst remote path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// NewCopyPath creates a provisioner that uploads a host file to the sandbox,
// existing files are overwritten.
func NewCopyPath(cfg CopyPathConfig) (Provisioner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid copy path config: %w", err)
	}

	src, dst := cfg.Path.SrcLocal, cfg.Path.DstRemote
	return ProvisionerFunc(func(ctx context.Context) error {
		cfg.Logger.Debugf("Copying %q to %q...", src, dst)

		if err := cfg.Accessor.CopyTo(ctx, src, dst); err != nil {
			return &model.ProvisioningError{
				SandboxID:  cfg.Accessor.SandboxID(),
				Dependency: "copy " + src,
				Err:        fmt.Errorf("copying %q to %q: %w", src, dst, err),
			}
		}

		cfg.Logger.Debugf("Copied %q to %q", src, dst)
		return nil
	}), nil
}
