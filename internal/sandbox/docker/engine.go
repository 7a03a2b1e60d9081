package docker

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/oklog/ulid/v2"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/metrics"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox"
)

const (
	// ManagedLabel marks the containers owned by sbxd.
	ManagedLabel = "sbxd.managed"
	// NameLabel stores the sandbox name as given by the user.
	NameLabel = "sbxd.name"
)

// keepAliveCommand keeps a sandbox running when no command is configured.
// The trap makes the sandbox stop right away instead of waiting for the kill.
var keepAliveCommand = []string{"sh", "-c", "trap 'exit 0' TERM INT; while true; do sleep 3600 & wait $!; done"}

// EngineConfig is the configuration for the Docker engine.
type EngineConfig struct {
	Client          DockerClient
	MetricsRecorder metrics.Recorder
	Logger          log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Client == nil {
		cli, err := NewClient("")
		if err != nil {
			return err
		}
		c.Client = cli
	}
	if c.MetricsRecorder == nil {
		c.MetricsRecorder = metrics.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "engine.Docker"})
	return nil
}

// Engine is the Docker implementation of the sandbox.Engine interface.
// It holds the single long-lived runtime client shared by all the operations.
type Engine struct {
	client  DockerClient
	metrics metrics.Recorder
	logger  log.Logger
}

// NewEngine creates a new Docker engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		client:  cfg.Client,
		metrics: cfg.MetricsRecorder,
		logger:  cfg.Logger,
	}, nil
}

var _ sandbox.Engine = &Engine{}

// measure runs a runtime call and records its duration.
func (e *Engine) measure(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	err := fn()
	e.metrics.ObserveRuntimeOperation(ctx, op, err == nil, time.Since(start))
	return err
}

// Ping checks the Docker daemon is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	err := e.measure(ctx, "ping", func() error {
		_, err := e.client.Ping(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("could not reach docker daemon: %w: %w", model.ErrRuntimeUnavailable, err)
	}
	return nil
}

// Create creates and starts a new Docker container sandbox.
func (e *Engine) Create(ctx context.Context, cfg model.SandboxConfig) (*model.Sandbox, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sandbox config: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = NewSandboxName()
	}
	logger := e.logger.WithValues(log.Kv{"sandbox-name": name})

	// 1. Make sure the image is present.
	logger.Infof("[1/3] Ensuring image: %s", cfg.BaseImage)
	if err := e.ensureImage(ctx, cfg.BaseImage); err != nil {
		return nil, err
	}

	// 2. Create the container.
	logger.Infof("[2/3] Creating container: %s", name)
	containerCfg, hostCfg, err := containerConfigs(name, cfg)
	if err != nil {
		return nil, err
	}

	var resp container.CreateResponse
	err = e.measure(ctx, "container_create", func() (err error) {
		resp, err = e.client.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, name)
		return err
	})
	if err != nil {
		if strings.Contains(err.Error(), "is already in use") {
			return nil, fmt.Errorf("sandbox name %q: %w: %w", name, model.ErrAlreadyExists, err)
		}
		return nil, classifyErr("could not create sandbox", name, err)
	}
	for _, w := range resp.Warnings {
		logger.Warningf("Runtime warning: %s", w)
	}

	// 3. Start the container.
	logger.Infof("[3/3] Starting container: %s", resp.ID)
	if err := e.Start(ctx, resp.ID); err != nil {
		// Best effort, a sandbox that never started is useless.
		if rmErr := e.client.ContainerRemove(context.WithoutCancel(ctx), resp.ID, container.RemoveOptions{Force: true}); rmErr != nil {
			logger.Errorf("Could not remove sandbox %s after failed start: %v", resp.ID, rmErr)
		}
		return nil, err
	}

	sb, err := e.Status(ctx, resp.ID)
	if err != nil {
		return nil, err
	}

	logger.Infof("Created Docker sandbox: %s", sb.ID)

	return sb, nil
}

// NewSandboxName returns a new unique sandbox name.
func NewSandboxName() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	return fmt.Sprintf("sbx-%s", strings.ToLower(id))
}

// Start starts a created or stopped Docker container sandbox.
func (e *Engine) Start(ctx context.Context, id string) error {
	err := e.measure(ctx, "container_start", func() error {
		return e.client.ContainerStart(ctx, id, container.StartOptions{})
	})
	if err != nil {
		return classifyErr("could not start sandbox", id, err)
	}

	e.logger.Debugf("Started Docker sandbox: %s", id)
	return nil
}

// Stop stops a running Docker container sandbox.
func (e *Engine) Stop(ctx context.Context, id string, grace time.Duration) error {
	timeout := graceSeconds(grace)
	err := e.measure(ctx, "container_stop", func() error {
		return e.client.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeout})
	})
	if err != nil {
		return classifyErr("could not stop sandbox", id, err)
	}

	e.logger.Infof("Stopped Docker sandbox: %s", id)
	return nil
}

// Restart stops and starts a Docker container sandbox, the runtime handles it atomically.
func (e *Engine) Restart(ctx context.Context, id string, grace time.Duration) error {
	timeout := graceSeconds(grace)
	err := e.measure(ctx, "container_restart", func() error {
		return e.client.ContainerRestart(ctx, id, container.StopOptions{Timeout: &timeout})
	})
	if err != nil {
		return classifyErr("could not restart sandbox", id, err)
	}

	e.logger.Infof("Restarted Docker sandbox: %s", id)
	return nil
}

// graceSeconds is the runtime stop timeout. Sub-second grace periods round up,
// only model.StopImmediately kills right away.
func graceSeconds(grace time.Duration) int {
	grace = model.GracePeriodOrDefault(grace)
	if grace < 0 {
		return 0
	}
	return int(math.Ceil(grace.Seconds()))
}

// Update changes the restart policy and resource limits of a sandbox.
func (e *Engine) Update(ctx context.Context, id string, upd model.SandboxUpdate) error {
	if err := upd.Validate(); err != nil {
		return fmt.Errorf("invalid sandbox update: %w", err)
	}

	updCfg := container.UpdateConfig{}
	if upd.RestartPolicy != nil {
		updCfg.RestartPolicy = container.RestartPolicy{Name: container.RestartPolicyMode(*upd.RestartPolicy)}
	}
	if upd.Memory != nil {
		mem, err := model.ParseMemory(*upd.Memory)
		if err != nil {
			return err
		}
		updCfg.Resources.Memory = mem
		// Same ratio the runtime applies on creation, otherwise growing the
		// memory over the current swap limit is rejected.
		updCfg.Resources.MemorySwap = 2 * mem
	}
	if upd.CPU != nil {
		updCfg.Resources.NanoCPUs = model.CPUToNanoCPUs(*upd.CPU)
	}

	var resp container.UpdateResponse
	err := e.measure(ctx, "container_update", func() (err error) {
		resp, err = e.client.ContainerUpdate(ctx, id, updCfg)
		return err
	})
	if err != nil {
		return classifyErr("could not update sandbox", id, err)
	}
	for _, w := range resp.Warnings {
		e.logger.Warningf("Runtime warning: %s", w)
	}

	e.logger.Infof("Updated Docker sandbox: %s", id)
	return nil
}

// Remove removes a Docker container sandbox. Removing a missing sandbox is an error.
func (e *Engine) Remove(ctx context.Context, id string, force bool) error {
	err := e.measure(ctx, "container_remove", func() error {
		return e.client.ContainerRemove(ctx, id, container.RemoveOptions{Force: force})
	})
	if err != nil {
		return classifyErr("could not remove sandbox", id, err)
	}

	e.logger.Infof("Removed Docker sandbox: %s", id)
	return nil
}

// Status returns the current state of a Docker container sandbox.
func (e *Engine) Status(ctx context.Context, id string) (*model.Sandbox, error) {
	var info container.InspectResponse
	err := e.measure(ctx, "container_inspect", func() (err error) {
		info, err = e.client.ContainerInspect(ctx, id)
		return err
	})
	if err != nil {
		return nil, classifyErr("could not inspect sandbox", id, err)
	}

	sb := sandboxFromInspect(info)
	return &sb, nil
}

// List returns the sandboxes managed by sbxd.
func (e *Engine) List(ctx context.Context, includeStopped bool) ([]model.Sandbox, error) {
	var summaries []container.Summary
	err := e.measure(ctx, "container_list", func() (err error) {
		summaries, err = e.client.ContainerList(ctx, container.ListOptions{
			All:     includeStopped,
			Filters: filters.NewArgs(filters.Arg("label", ManagedLabel+"=true")),
		})
		return err
	})
	if err != nil {
		return nil, classifyErr("could not list sandboxes", "", err)
	}

	sandboxes := make([]model.Sandbox, 0, len(summaries))
	for _, s := range summaries {
		sandboxes = append(sandboxes, sandboxFromSummary(s))
	}

	return sandboxes, nil
}
