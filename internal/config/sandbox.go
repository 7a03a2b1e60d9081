package config

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/sbxd/internal/model"
)

// GetSandboxConfig loads a sandbox configuration from a YAML file and returns a validated domain model.
func (r *ConfigYAMLRepository) GetSandboxConfig(ctx context.Context, path string) (model.SandboxConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.SandboxConfig{}, fmt.Errorf("reading sandbox config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.SandboxConfig{}, ctx.Err()
	}

	var cfg yamlSandboxConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.SandboxConfig{}, fmt.Errorf("parsing YAML: %w: %w", model.ErrNotValid, err)
	}

	sb := cfg.toModel()
	if err := sb.Validate(); err != nil {
		return model.SandboxConfig{}, fmt.Errorf("invalid sandbox configuration: %w", err)
	}

	return sb, nil
}

// yamlSandboxConfig represents the YAML structure for sandbox configuration.
type yamlSandboxConfig struct {
	Name          string            `yaml:"name"`
	Image         string            `yaml:"image"`
	Ports         []string          `yaml:"ports"`
	Env           map[string]string `yaml:"env"`
	Volumes       []string          `yaml:"volumes"`
	Memory        string            `yaml:"memory"`
	CPU           float64           `yaml:"cpu"`
	Dependencies  []string          `yaml:"dependencies"`
	Command       []string          `yaml:"command"`
	RestartPolicy string            `yaml:"restart_policy"`
}

func (c yamlSandboxConfig) toModel() model.SandboxConfig {
	return model.SandboxConfig{
		Name:          c.Name,
		BaseImage:     c.Image,
		Ports:         c.Ports,
		Env:           c.Env,
		Volumes:       c.Volumes,
		Memory:        c.Memory,
		CPU:           c.CPU,
		Dependencies:  c.Dependencies,
		Command:       c.Command,
		RestartPolicy: model.RestartPolicy(c.RestartPolicy),
	}
}
