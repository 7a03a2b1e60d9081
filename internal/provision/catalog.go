package provision

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/slok/sbxd/internal/model"
)

//go:embed scripts/*.sh.tmpl
var scriptFiles embed.FS

// builtinDefaultVersions are the versions installed when a dependency doesn't set one.
var builtinDefaultVersions = map[string]string{
	"mongodb":    "7.0",
	"nodejs":     "20",
	"postgresql": "16",
	"python":     "3",
	"redis":      "7",
}

// Recipe is the install script template of a dependency type.
type Recipe struct {
	DefaultVersion string
	// Script is a text/template rendered with the dependency as data ({{ .Version }}, {{ .Type }}).
	Script string
}

// Catalog holds the install recipes keyed by dependency type.
type Catalog map[string]Recipe

// BuiltinCatalog returns the catalog shipped with sbxd.
func BuiltinCatalog() (Catalog, error) {
	entries, err := scriptFiles.ReadDir("scripts")
	if err != nil {
		return nil, fmt.Errorf("could not read embedded scripts: %w", err)
	}

	c := Catalog{}
	for _, e := range entries {
		data, err := scriptFiles.ReadFile(path.Join("scripts", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("could not read embedded script %q: %w", e.Name(), err)
		}
		typ := strings.TrimSuffix(e.Name(), ".sh.tmpl")
		c[typ] = Recipe{
			DefaultVersion: builtinDefaultVersions[typ],
			Script:         string(data),
		}
	}

	return c, nil
}

// Merge returns a new catalog with the overrides applied on top. Empty
// override fields keep the current value.
func (c Catalog) Merge(overrides Catalog) Catalog {
	merged := make(Catalog, len(c)+len(overrides))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range overrides {
		k = strings.ToLower(k)
		current := merged[k]
		if v.DefaultVersion != "" {
			current.DefaultVersion = v.DefaultVersion
		}
		if v.Script != "" {
			current.Script = v.Script
		}
		merged[k] = current
	}
	return merged
}

// Types returns the known dependency types sorted.
func (c Catalog) Types() []string {
	types := make([]string, 0, len(c))
	for k := range c {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// ErrUnknownDependency is returned when the catalog has no recipe for a dependency type.
var ErrUnknownDependency = errors.New("unknown dependency type")

// Render returns the install script for a dependency and the dependency with
// its version resolved.
func (c Catalog) Render(dep model.DependencySpec) (string, model.DependencySpec, error) {
	recipe, ok := c[dep.Type]
	if !ok {
		return "", dep, fmt.Errorf("%q: %w", dep.Type, ErrUnknownDependency)
	}

	if dep.Version == "" {
		dep.Version = recipe.DefaultVersion
	}
	if strings.TrimSpace(recipe.Script) == "" {
		return "", dep, fmt.Errorf("dependency %q has no install script: %w", dep.Type, model.ErrNotValid)
	}
	if dep.Version == "" {
		return "", dep, fmt.Errorf("dependency %q has no version and no default version: %w", dep.Type, model.ErrNotValid)
	}

	tpl, err := template.New(dep.Type).Option("missingkey=error").Parse(recipe.Script)
	if err != nil {
		return "", dep, fmt.Errorf("invalid install script template for %q: %w: %w", dep.Type, model.ErrNotValid, err)
	}

	var b bytes.Buffer
	if err := tpl.Execute(&b, dep); err != nil {
		return "", dep, fmt.Errorf("could not render install script for %q: %w", dep, err)
	}

	return b.String(), dep, nil
}
