package model

import (
	"fmt"
	"strings"
	"time"
)

// SandboxStatus represents the status of a sandbox.
type SandboxStatus string

const (
	// SandboxStatusPending indicates the sandbox has been created but never started.
	SandboxStatusPending SandboxStatus = "pending"
	// SandboxStatusRunning indicates the sandbox is running.
	SandboxStatusRunning SandboxStatus = "running"
	// SandboxStatusStopped indicates the sandbox is stopped.
	SandboxStatusStopped SandboxStatus = "stopped"
	// SandboxStatusFailed indicates the sandbox is dead or in an unknown state.
	SandboxStatusFailed SandboxStatus = "failed"
)

// RestartPolicy is the runtime restart policy of a sandbox.
type RestartPolicy string

const (
	RestartPolicyNo            RestartPolicy = "no"
	RestartPolicyAlways        RestartPolicy = "always"
	RestartPolicyOnFailure     RestartPolicy = "on-failure"
	RestartPolicyUnlessStopped RestartPolicy = "unless-stopped"
)

// DefaultRestartPolicy is used when the configuration doesn't set one.
const DefaultRestartPolicy = RestartPolicyUnlessStopped

// Validate checks the restart policy is one of the known ones. Empty is valid.
func (r RestartPolicy) Validate() error {
	switch r {
	case "", RestartPolicyNo, RestartPolicyAlways, RestartPolicyOnFailure, RestartPolicyUnlessStopped:
		return nil
	}
	return fmt.Errorf("unknown restart policy %q: %w", r, ErrNotValid)
}

// OrDefault returns the policy or the default one if unset.
func (r RestartPolicy) OrDefault() RestartPolicy {
	if r == "" {
		return DefaultRestartPolicy
	}
	return r
}

// DefaultStopGracePeriod is the time the runtime waits after the termination
// signal before killing the sandbox.
const DefaultStopGracePeriod = 10 * time.Second

// StopImmediately is a grace period that kills the sandbox without waiting.
const StopImmediately time.Duration = -1

// GracePeriodOrDefault resolves a stop grace period: zero means
// DefaultStopGracePeriod and any negative value means StopImmediately.
func GracePeriodOrDefault(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultStopGracePeriod
	case d < 0:
		return StopImmediately
	}
	return d
}

// Sandbox represents a sandbox instance as seen by the runtime.
type Sandbox struct {
	ID            string
	Name          string
	Status        SandboxStatus
	Image         string
	RestartPolicy RestartPolicy
	Ports         []PortBinding
	MemoryBytes   int64
	NanoCPUs      int64
	CreatedAt     time.Time
	StartedAt     *time.Time
	StoppedAt     *time.Time
	Error         string
}

// SandboxConfig is the configuration for creating a sandbox.
// It is supplied once and never mutated.
type SandboxConfig struct {
	Name          string
	BaseImage     string
	Ports         []string
	Env           map[string]string
	Volumes       []string
	Memory        string
	CPU           float64
	Dependencies  []string
	Command       []string
	RestartPolicy RestartPolicy
}

// Validate validates the sandbox configuration.
func (c *SandboxConfig) Validate() error {
	if strings.TrimSpace(c.BaseImage) == "" {
		return fmt.Errorf("base image is required: %w", ErrNotValid)
	}

	if _, err := ParsePortSpecs(c.Ports); err != nil {
		return fmt.Errorf("invalid ports: %w", err)
	}

	for _, v := range c.Volumes {
		if _, err := ParseVolumeSpec(v); err != nil {
			return fmt.Errorf("invalid volumes: %w", err)
		}
	}

	if c.Memory != "" {
		if _, err := ParseMemory(c.Memory); err != nil {
			return fmt.Errorf("invalid memory: %w", err)
		}
	}

	if err := ValidateCPU(c.CPU); err != nil {
		return err
	}

	for _, d := range c.Dependencies {
		if _, err := ParseDependency(d); err != nil {
			return fmt.Errorf("invalid dependencies: %w", err)
		}
	}

	if err := c.RestartPolicy.Validate(); err != nil {
		return err
	}

	return nil
}

// SandboxUpdate holds the mutable settings of a running sandbox.
// Nil fields are left untouched.
type SandboxUpdate struct {
	RestartPolicy *RestartPolicy
	Memory        *string
	CPU           *float64
}

// IsEmpty returns true when the update doesn't change anything.
func (u SandboxUpdate) IsEmpty() bool {
	return u.RestartPolicy == nil && u.Memory == nil && u.CPU == nil
}

// Validate validates the update.
func (u SandboxUpdate) Validate() error {
	if u.IsEmpty() {
		return fmt.Errorf("update has no fields set: %w", ErrNotValid)
	}
	if u.RestartPolicy != nil {
		if *u.RestartPolicy == "" {
			return fmt.Errorf("restart policy can't be empty: %w", ErrNotValid)
		}
		if err := u.RestartPolicy.Validate(); err != nil {
			return err
		}
	}
	if u.Memory != nil {
		if _, err := ParseMemory(*u.Memory); err != nil {
			return fmt.Errorf("invalid memory: %w", err)
		}
	}
	if u.CPU != nil {
		if err := ValidateCPU(*u.CPU); err != nil {
			return err
		}
	}
	return nil
}
