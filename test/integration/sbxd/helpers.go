package sbxd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/sbxd/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
	Image  string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "sbxd"
	}

	// go test changes the CWD to the package directory, relative paths would be wrong.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("SBXD_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("sbxd binary not found at %q: %w", c.Binary, err)
	}

	if c.Image == "" {
		c.Image = "ubuntu:24.04"
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "SBXD_INTEGRATION"
		envBinary     = "SBXD_INTEGRATION_BINARY"
		envImage      = "SBXD_INTEGRATION_IMAGE"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary: os.Getenv(envBinary),
		Image:  os.Getenv(envImage),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunSBXDCmd runs an sbxd command with an isolated configuration file and no logs.
func RunSBXDCmd(ctx context.Context, config Config, configPath, cmdArgs string) (stdout, stderr []byte, err error) {
	args := fmt.Sprintf("--config %s %s", configPath, cmdArgs)
	return testutils.RunSBXD(ctx, nil, config.Binary, args, true)
}

// RunSBXDArgs runs an sbxd command with pre-split arguments and optional stdin.
func RunSBXDArgs(ctx context.Context, config Config, configPath string, args []string, stdin []byte) (stdout, stderr []byte, err error) {
	args = append([]string{"--config", configPath}, args...)
	return testutils.RunSBXDArgs(ctx, nil, config.Binary, args, stdin, true)
}

// RunCreate creates a sandbox with the configured image and extra flags.
func RunCreate(ctx context.Context, config Config, configPath, name, extra string) (stdout, stderr []byte, err error) {
	return RunSBXDCmd(ctx, config, configPath, fmt.Sprintf("create --name %s --image %s %s", name, config.Image, extra))
}

// RunStop stops a sandbox.
func RunStop(ctx context.Context, config Config, configPath, name string) (stdout, stderr []byte, err error) {
	return RunSBXDCmd(ctx, config, configPath, fmt.Sprintf("stop --time 2s %s", name))
}

// RunRm removes a sandbox (with force).
func RunRm(ctx context.Context, config Config, configPath, name string) (stdout, stderr []byte, err error) {
	return RunSBXDCmd(ctx, config, configPath, fmt.Sprintf("rm --force %s", name))
}

// RunStatus returns the sandbox status in JSON format.
func RunStatus(ctx context.Context, config Config, configPath, name string) (stdout, stderr []byte, err error) {
	return RunSBXDCmd(ctx, config, configPath, fmt.Sprintf("status --format json %s", name))
}

// RunList lists all the sandboxes in JSON format.
func RunList(ctx context.Context, config Config, configPath string) (stdout, stderr []byte, err error) {
	return RunSBXDCmd(ctx, config, configPath, "list --all --format json")
}
