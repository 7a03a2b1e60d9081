package lib

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/slok/sbxd/internal/app/lifecycle"
	"github.com/slok/sbxd/internal/config"
	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/files"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/sandbox"
	"github.com/slok/sbxd/internal/sandbox/docker"
)

const (
	defaultDataDir    = ".sbxd"
	defaultConfigFile = "config.yaml"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} uses the Docker environment
// settings and ~/.sbxd/config.yaml when it exists.
type Config struct {
	// DockerHost is the container runtime daemon address.
	// Default: DOCKER_HOST environment or the platform default socket.
	DockerHost string

	// ConfigPath is the sbxd engine configuration file (dependency catalog
	// overrides, failure heuristic). A missing file uses the defaults.
	// Default: ~/.sbxd/config.yaml.
	ConfigPath string

	// ProvisioningOutput receives the output of the dependency install
	// scripts. Default: discarded.
	ProvisioningOutput io.Writer

	// Logger receives log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.ConfigPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.ConfigPath = filepath.Join(home, defaultDataDir, defaultConfigFile)
	}

	if c.ProvisioningOutput == nil {
		c.ProvisioningOutput = io.Discard
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "lib.Client"})

	return nil
}

// Client is the main SDK entry point for managing sandboxes programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	engine    sandbox.Engine
	executor  *executor.Executor
	files     *files.Service
	lifecycle *lifecycle.Service
	config    *config.Config
	output    io.Writer
	logger    log.Logger
	closeFn   func() error
}

// New creates a new SDK client connected to the container runtime.
//
// The caller must call [Client.Close] when done:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cli, err := docker.NewClient(cfg.DockerHost)
	if err != nil {
		return nil, mapError(err)
	}

	eng, err := docker.NewEngine(docker.EngineConfig{
		Client: cli,
		Logger: cfg.Logger,
	})
	if err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("could not create engine: %w", err)
	}

	c, err := newClient(ctx, eng, cfg)
	if err != nil {
		_ = cli.Close()
		return nil, err
	}
	c.closeFn = cli.Close

	return c, nil
}

// newClient builds the client services on top of an already connected engine.
func newClient(ctx context.Context, eng sandbox.Engine, cfg Config) (*Client, error) {
	dir, file := filepath.Split(cfg.ConfigPath)
	if dir == "" {
		dir = "."
	}
	appCfg, err := config.NewConfigYAMLRepository(os.DirFS(dir)).GetConfig(ctx, file)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not load configuration %s: %w", cfg.ConfigPath, err))
	}

	exe, err := executor.NewExecutor(executor.ExecutorConfig{
		Engine: eng,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create executor: %w", err)
	}

	fsvc, err := files.NewService(files.ServiceConfig{
		Runner:   exe,
		Archiver: eng,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create files service: %w", err)
	}

	lsvc, err := lifecycle.NewService(lifecycle.ServiceConfig{
		Engine: eng,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create lifecycle service: %w", err)
	}

	return &Client{
		engine:    eng,
		executor:  exe,
		files:     fsvc,
		lifecycle: lsvc,
		config:    appCfg,
		output:    cfg.ProvisioningOutput,
		logger:    cfg.Logger,
	}, nil
}

// Ping checks the container runtime is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return mapError(c.engine.Ping(ctx))
}

// Close releases the connection with the container runtime.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
