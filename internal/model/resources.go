package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var memoryRegexp = regexp.MustCompile(`(?i)^(\d+)([bkmg]?)$`)

var memoryMultipliers = map[string]int64{
	"":  1,
	"b": 1,
	"k": 1024,
	"m": 1024 * 1024,
	"g": 1024 * 1024 * 1024,
}

// ParseMemory converts a memory string (e.g. `512m`, `1g`, `2048`) into bytes.
// No suffix means bytes.
func ParseMemory(s string) (int64, error) {
	m := memoryRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid memory %q, expected <number>[b|k|m|g]: %w", s, ErrNotValid)
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory %q: %w", s, ErrNotValid)
	}

	mult := memoryMultipliers[strings.ToLower(m[2])]
	if n > math.MaxInt64/mult {
		return 0, fmt.Errorf("memory %q overflows: %w", s, ErrNotValid)
	}

	return n * mult, nil
}

// ValidateCPU checks that fractional cores are finite, not negative, and fit
// in nano CPU units.
func ValidateCPU(cpu float64) error {
	switch {
	case math.IsNaN(cpu) || math.IsInf(cpu, 0):
		return fmt.Errorf("cpu must be a finite number: %w", ErrNotValid)
	case cpu < 0:
		return fmt.Errorf("cpu must not be negative: %w", ErrNotValid)
	case cpu*1e9 >= math.MaxInt64:
		return fmt.Errorf("cpu %g is too large: %w", cpu, ErrNotValid)
	}
	return nil
}

// CPUToNanoCPUs converts fractional cores into the runtime nano CPU units. The
// value must be valid for ValidateCPU.
func CPUToNanoCPUs(cpu float64) int64 {
	return int64(math.Floor(cpu * 1e9))
}

// PortBinding is a resolved sandbox port publication.
type PortBinding struct {
	ContainerPort int
	HostPort      int
	Protocol      string
}

// String returns the canonical `host:container/proto` representation.
func (p PortBinding) String() string {
	return fmt.Sprintf("%d:%d/%s", p.HostPort, p.ContainerPort, p.Protocol)
}

// DefaultPortProtocol is used when the port spec doesn't set one.
const DefaultPortProtocol = "tcp"

// ParsePortSpec parses a port spec. Supported formats:
//   - "80" -> {Container: 80, Host: 80, Protocol: tcp}
//   - "8080:80" -> {Container: 80, Host: 8080, Protocol: tcp}
//   - "8080:80/udp" -> {Container: 80, Host: 8080, Protocol: udp}
func ParsePortSpec(s string) (PortBinding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PortBinding{}, fmt.Errorf("port spec cannot be empty: %w", ErrNotValid)
	}

	hostPart, containerPart, hasHost := strings.Cut(s, ":")
	if !hasHost {
		containerPart = hostPart
	}

	containerPart, proto, hasProto := strings.Cut(containerPart, "/")
	if !hasProto {
		proto = DefaultPortProtocol
	}
	proto = strings.ToLower(proto)
	switch proto {
	case "tcp", "udp", "sctp":
	default:
		return PortBinding{}, fmt.Errorf("invalid port protocol %q in %q: %w", proto, s, ErrNotValid)
	}

	containerPort, err := parsePort(containerPart)
	if err != nil {
		return PortBinding{}, fmt.Errorf("invalid container port in %q: %w", s, err)
	}

	hostPort := containerPort
	if hasHost {
		hostPort, err = parsePort(hostPart)
		if err != nil {
			return PortBinding{}, fmt.Errorf("invalid host port in %q: %w", s, err)
		}
	}

	return PortBinding{ContainerPort: containerPort, HostPort: hostPort, Protocol: proto}, nil
}

// ParsePortSpecs parses multiple port specs.
func ParsePortSpecs(specs []string) ([]PortBinding, error) {
	ports := make([]PortBinding, 0, len(specs))
	for _, s := range specs {
		p, err := ParsePortSpec(s)
		if err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}
	return ports, nil
}

// parsePort parses and validates a single port number.
func parsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, ErrNotValid)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range (1-65535): %w", port, ErrNotValid)
	}
	return port, nil
}

// VolumeMount is a host bind mount.
type VolumeMount struct {
	HostPath      string
	ContainerPath string
	ReadOnly      bool
}

// Bind returns the runtime bind representation.
func (v VolumeMount) Bind() string {
	if v.ReadOnly {
		return v.HostPath + ":" + v.ContainerPath + ":ro"
	}
	return v.HostPath + ":" + v.ContainerPath
}

// ParseVolumeSpec parses `hostPath:containerPath[:ro|rw]`.
func ParseVolumeSpec(s string) (VolumeMount, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return VolumeMount{}, fmt.Errorf("invalid volume %q, expected host:container[:ro|rw]: %w", s, ErrNotValid)
	}
	if parts[0] == "" || parts[1] == "" {
		return VolumeMount{}, fmt.Errorf("invalid volume %q, empty path: %w", s, ErrNotValid)
	}
	if !strings.HasPrefix(parts[1], "/") {
		return VolumeMount{}, fmt.Errorf("volume container path %q must be absolute: %w", parts[1], ErrNotValid)
	}

	v := VolumeMount{HostPath: parts[0], ContainerPath: parts[1]}
	if len(parts) == 3 {
		switch parts[2] {
		case "ro":
			v.ReadOnly = true
		case "rw":
		default:
			return VolumeMount{}, fmt.Errorf("invalid volume mode %q: %w", parts[2], ErrNotValid)
		}
	}

	return v, nil
}
