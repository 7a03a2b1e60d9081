package docker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"

	"github.com/slok/sbxd/internal/model"
)

// containerConfigs translates a sandbox configuration into the runtime creation request.
func containerConfigs(name string, cfg model.SandboxConfig) (*container.Config, *container.HostConfig, error) {
	ports, err := model.ParsePortSpecs(cfg.Ports)
	if err != nil {
		return nil, nil, err
	}
	exposed, bindings, err := natPorts(ports)
	if err != nil {
		return nil, nil, err
	}

	var memory int64
	if cfg.Memory != "" {
		memory, err = model.ParseMemory(cfg.Memory)
		if err != nil {
			return nil, nil, err
		}
	}

	binds := make([]string, 0, len(cfg.Volumes))
	for _, v := range cfg.Volumes {
		vm, err := model.ParseVolumeSpec(v)
		if err != nil {
			return nil, nil, err
		}
		binds = append(binds, vm.Bind())
	}

	cmd := cfg.Command
	if len(cmd) == 0 {
		cmd = keepAliveCommand
	}

	containerCfg := &container.Config{
		Image:        cfg.BaseImage,
		Env:          envSlice(cfg.Env),
		Cmd:          cmd,
		ExposedPorts: exposed,
		AttachStdin:  false,
		AttachStdout: false,
		AttachStderr: false,
		Labels: map[string]string{
			ManagedLabel: "true",
			NameLabel:    name,
		},
	}

	hostCfg := &container.HostConfig{
		Binds:        binds,
		PortBindings: bindings,
		RestartPolicy: container.RestartPolicy{
			Name: container.RestartPolicyMode(cfg.RestartPolicy.OrDefault()),
		},
		Resources: container.Resources{
			Memory:   memory,
			NanoCPUs: model.CPUToNanoCPUs(cfg.CPU),
		},
	}

	return containerCfg, hostCfg, nil
}

func natPorts(ports []model.PortBinding) (nat.PortSet, nat.PortMap, error) {
	exposed := nat.PortSet{}
	bindings := nat.PortMap{}
	for _, p := range ports {
		port, err := nat.NewPort(p.Protocol, strconv.Itoa(p.ContainerPort))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid port %s: %w: %w", p, model.ErrNotValid, err)
		}
		exposed[port] = struct{}{}
		bindings[port] = append(bindings[port], nat.PortBinding{HostPort: strconv.Itoa(p.HostPort)})
	}
	return exposed, bindings, nil
}

func envSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	vars := make([]string, 0, len(env))
	for k, v := range env {
		vars = append(vars, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(vars)
	return vars
}

// statusFromState maps the Docker state to SandboxStatus.
func statusFromState(state string) model.SandboxStatus {
	switch state {
	case "created":
		return model.SandboxStatusPending
	case "running", "restarting":
		return model.SandboxStatusRunning
	case "exited", "paused":
		return model.SandboxStatusStopped
	default:
		return model.SandboxStatusFailed
	}
}

func sandboxFromInspect(info container.InspectResponse) model.Sandbox {
	sb := model.Sandbox{}
	if info.ContainerJSONBase == nil {
		return sb
	}

	sb.ID = info.ID
	sb.Name = strings.TrimPrefix(info.Name, "/") // Docker prefixes with /.
	sb.CreatedAt, _ = time.Parse(time.RFC3339Nano, info.Created)

	if info.Config != nil {
		sb.Image = info.Config.Image
	}

	if info.State != nil {
		sb.Status = statusFromState(string(info.State.Status))
		sb.Error = info.State.Error
		if t, err := time.Parse(time.RFC3339Nano, info.State.StartedAt); err == nil && !t.IsZero() {
			sb.StartedAt = &t
		}
		if sb.Status == model.SandboxStatusStopped {
			if t, err := time.Parse(time.RFC3339Nano, info.State.FinishedAt); err == nil && !t.IsZero() {
				sb.StoppedAt = &t
			}
		}
	}

	if info.HostConfig != nil {
		sb.MemoryBytes = info.HostConfig.Memory
		sb.NanoCPUs = info.HostConfig.NanoCPUs
		sb.RestartPolicy = model.RestartPolicy(string(info.HostConfig.RestartPolicy.Name))
		sb.Ports = portsFromNat(info.HostConfig.PortBindings)
	}

	return sb
}

func portsFromNat(pm nat.PortMap) []model.PortBinding {
	var ports []model.PortBinding
	for port, bindings := range pm {
		for _, b := range bindings {
			hostPort, err := strconv.Atoi(b.HostPort)
			if err != nil {
				continue
			}
			ports = append(ports, model.PortBinding{
				ContainerPort: port.Int(),
				HostPort:      hostPort,
				Protocol:      port.Proto(),
			})
		}
	}
	sortPorts(ports)
	return ports
}

func sandboxFromSummary(s container.Summary) model.Sandbox {
	sb := model.Sandbox{
		ID:        s.ID,
		Image:     s.Image,
		Status:    statusFromState(string(s.State)),
		CreatedAt: time.Unix(s.Created, 0).UTC(),
		Name:      s.Labels[NameLabel],
	}
	if sb.Name == "" && len(s.Names) > 0 {
		sb.Name = strings.TrimPrefix(s.Names[0], "/")
	}

	// The runtime lists a binding once per host IP family.
	seen := map[model.PortBinding]bool{}
	for _, p := range s.Ports {
		if p.PublicPort == 0 {
			continue
		}
		pb := model.PortBinding{
			ContainerPort: int(p.PrivatePort),
			HostPort:      int(p.PublicPort),
			Protocol:      p.Type,
		}
		if seen[pb] {
			continue
		}
		seen[pb] = true
		sb.Ports = append(sb.Ports, pb)
	}
	sortPorts(sb.Ports)

	return sb
}

func sortPorts(ports []model.PortBinding) {
	sort.Slice(ports, func(i, j int) bool {
		if ports[i].ContainerPort != ports[j].ContainerPort {
			return ports[i].ContainerPort < ports[j].ContainerPort
		}
		return ports[i].Protocol < ports[j].Protocol
	})
}
