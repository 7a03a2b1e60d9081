package model

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dependencyTypeRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)
	// Versions end up in shell scripts, only plain version tokens are accepted.
	dependencyVersionRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.+-]*$`)
)

// DependencySpec is a dependency to install inside a sandbox after it starts.
type DependencySpec struct {
	Type string
	// Version is optional, the configured default for the type is used when empty.
	Version string
}

// String returns the `type[:version]` representation.
func (d DependencySpec) String() string {
	if d.Version == "" {
		return d.Type
	}
	return d.Type + ":" + d.Version
}

// ParseDependency parses `type[:version]`. The type is case-insensitive.
func ParseDependency(s string) (DependencySpec, error) {
	s = strings.TrimSpace(s)
	typ, version, hasVersion := strings.Cut(s, ":")
	typ = strings.ToLower(typ)

	if !dependencyTypeRegexp.MatchString(typ) {
		return DependencySpec{}, fmt.Errorf("invalid dependency type in %q: %w", s, ErrNotValid)
	}
	version = strings.TrimSpace(version)
	if hasVersion && version == "" {
		return DependencySpec{}, fmt.Errorf("empty dependency version in %q: %w", s, ErrNotValid)
	}
	if version != "" && !dependencyVersionRegexp.MatchString(version) {
		return DependencySpec{}, fmt.Errorf("invalid dependency version in %q: %w", s, ErrNotValid)
	}

	return DependencySpec{Type: typ, Version: version}, nil
}
