package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/provision"
)

// Config is the sbxd engine configuration.
type Config struct {
	// Catalog is the builtin dependency catalog with the configured overrides.
	Catalog provision.Catalog
	// FailurePatterns enable the stderr failure heuristic on the dependency
	// scripts, empty disables it.
	FailurePatterns []string
	Terminal        TerminalConfig
}

// TerminalConfig is the terminal bridge configuration.
type TerminalConfig struct {
	Token string
	Shell []string
}

// ConfigYAMLRepository loads the sbxd configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads the engine configuration. A missing file returns the defaults.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (*Config, error) {
	catalog, err := provision.BuiltinCatalog()
	if err != nil {
		return nil, fmt.Errorf("could not load builtin catalog: %w", err)
	}

	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{Catalog: catalog}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var cfg yamlConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w: %w", model.ErrNotValid, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w: %w", model.ErrNotValid, err)
	}

	return cfg.toModel(catalog), nil
}

type yamlConfig struct {
	Dependencies     map[string]yamlDependency `yaml:"dependencies"`
	FailureHeuristic bool                      `yaml:"failure_heuristic"`
	FailurePatterns  []string                  `yaml:"failure_patterns"`
	Terminal         yamlTerminal              `yaml:"terminal"`
}

type yamlDependency struct {
	DefaultVersion string `yaml:"default_version"`
	Script         string `yaml:"script"`
}

type yamlTerminal struct {
	Token string   `yaml:"token"`
	Shell []string `yaml:"shell"`
}

func (c yamlConfig) validate() error {
	for typ, dep := range c.Dependencies {
		// Versions are rendered into the install scripts.
		spec := typ
		if dep.DefaultVersion != "" {
			spec += ":" + dep.DefaultVersion
		}
		if _, err := model.ParseDependency(spec); err != nil {
			return fmt.Errorf("dependency %q: %w", typ, err)
		}
	}

	for _, p := range c.FailurePatterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("failure patterns can't be empty")
		}
	}

	for _, s := range c.Terminal.Shell {
		if s == "" {
			return fmt.Errorf("terminal shell can't have empty arguments")
		}
	}

	return nil
}

func (c yamlConfig) toModel(builtin provision.Catalog) *Config {
	overrides := provision.Catalog{}
	for typ, dep := range c.Dependencies {
		overrides[typ] = provision.Recipe{DefaultVersion: dep.DefaultVersion, Script: dep.Script}
	}

	patterns := c.FailurePatterns
	if c.FailureHeuristic && len(patterns) == 0 {
		patterns = executor.DefaultFailurePatterns
	}

	return &Config{
		Catalog:         builtin.Merge(overrides),
		FailurePatterns: patterns,
		Terminal: TerminalConfig{
			Token: c.Terminal.Token,
			Shell: c.Terminal.Shell,
		},
	}
}
