package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sdklib "github.com/slok/sbxd/pkg/lib"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	DockerHost string
	Image      string
}

func (c *Config) defaults() {
	if c.Image == "" {
		c.Image = "ubuntu:24.04"
	}
}

// NewConfig loads integration test configuration from environment variables.
// If the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "SBXD_INTEGRATION"
		envDockerHost = "SBXD_INTEGRATION_DOCKER_HOST"
		envImage      = "SBXD_INTEGRATION_IMAGE"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		DockerHost: os.Getenv(envDockerHost),
		Image:      os.Getenv(envImage),
	}
	c.defaults()

	return c
}

// UniqueName generates a unique sandbox name for test isolation.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// NewTestClient creates an SDK client connected to the configured runtime,
// the test is skipped when the runtime can't be reached.
func NewTestClient(t *testing.T, config Config) *sdklib.Client {
	t.Helper()

	ctx := context.Background()
	client, err := sdklib.New(ctx, sdklib.Config{
		DockerHost: config.DockerHost,
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	if err := client.Ping(ctx); err != nil {
		t.Skipf("Skipping, container runtime not reachable: %s", err)
	}

	return client
}

// CleanupSandbox registers a cleanup function that removes a sandbox forcefully.
func CleanupSandbox(t *testing.T, client *sdklib.Client, name string) {
	t.Helper()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		// Best effort.
		_, _ = client.RemoveSandbox(ctx, name, true)
	})
}
