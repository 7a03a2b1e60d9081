package lib

import (
	"errors"
	"io"
	"time"

	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/provision"
)

// SandboxStatus represents the lifecycle state of a sandbox.
type SandboxStatus string

const (
	// SandboxStatusPending indicates the sandbox has been created but not started yet.
	SandboxStatusPending SandboxStatus = "pending"
	// SandboxStatusRunning indicates the sandbox is running and accepting commands.
	SandboxStatusRunning SandboxStatus = "running"
	// SandboxStatusStopped indicates the sandbox main process has ended. It can be started again.
	SandboxStatusStopped SandboxStatus = "stopped"
	// SandboxStatusFailed indicates the runtime reported an unrecoverable error.
	SandboxStatusFailed SandboxStatus = "failed"
)

// RestartPolicy is what the runtime does when the sandbox main process ends.
type RestartPolicy string

const (
	RestartPolicyNo            RestartPolicy = "no"
	RestartPolicyAlways        RestartPolicy = "always"
	RestartPolicyOnFailure     RestartPolicy = "on-failure"
	RestartPolicyUnlessStopped RestartPolicy = "unless-stopped"
)

// Port is a published sandbox port.
type Port struct {
	ContainerPort int
	HostPort      int
	Protocol      string
}

// Sandbox represents a sandbox instance returned by the SDK.
//
// This is a snapshot of the runtime state at the time of the API call.
// Use [Client.GetSandbox] to get the latest state.
type Sandbox struct {
	ID            string
	Name          string
	Status        SandboxStatus
	Image         string
	RestartPolicy RestartPolicy
	Ports         []Port
	// MemoryBytes is the memory limit, 0 means unlimited.
	MemoryBytes int64
	// CPUs is the CPU quota, 0 means unlimited.
	CPUs      float64
	CreatedAt time.Time
	// StartedAt is nil if the sandbox never started.
	StartedAt *time.Time
	// StoppedAt is nil if the sandbox never stopped.
	StoppedAt *time.Time
	// Error is the last runtime error, if any.
	Error string
}

// CopyFile is a local file uploaded into the sandbox on creation.
type CopyFile struct {
	Local  string
	Remote string
}

// CreateSandboxOpts configures a new sandbox.
type CreateSandboxOpts struct {
	// Name is generated when empty.
	Name string
	// Image is the base image, required.
	Image string
	// Ports use the `CONTAINER`, `HOST:CONTAINER` or `HOST:CONTAINER/PROTO` formats.
	Ports []string
	Env   map[string]string
	// Volumes use the `HOST:CONTAINER[:ro]` format.
	Volumes []string
	// Memory is a human size (e.g. `512m`, `2g`), empty means unlimited.
	Memory string
	// CPUs is the CPU quota (e.g. 0.5), 0 means unlimited.
	CPUs float64
	// Dependencies use the `TYPE` or `TYPE:VERSION` formats (e.g. `node:20`).
	Dependencies []string
	// Command is the main process, when empty the sandbox is kept alive.
	Command       []string
	RestartPolicy RestartPolicy
	// Files are uploaded after the dependencies have been installed.
	Files []CopyFile
}

// ListSandboxesOpts filters the listed sandboxes.
type ListSandboxesOpts struct {
	// All includes the sandboxes that are not running.
	All bool
	// Status only returns the sandboxes with this status.
	Status *SandboxStatus
}

// UpdateSandboxOpts are the mutable sandbox settings, nil fields are not changed.
type UpdateSandboxOpts struct {
	RestartPolicy *RestartPolicy
	Memory        *string
	CPUs          *float64
}

// ExecOpts configures a command execution.
type ExecOpts struct {
	WorkingDir string
	Env        map[string]string
	Stdin      io.Reader
	// Stdout and Stderr receive the output as it's produced, it's also
	// returned in the result.
	Stdout io.Writer
	Stderr io.Writer
	// Files are local files uploaded to the working directory before executing.
	Files []string
}

// ExecResult is the outcome of a command execution.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// FileEntry describes a file or directory inside a sandbox.
type FileEntry struct {
	Name        string
	Path        string
	IsDir       bool
	Permissions string
	Owner       string
	Group       string
	Size        int64
	ModifiedAt  time.Time
}

var (
	// ErrNotFound is returned when a sandbox or a path doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a sandbox name is already in use.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned on invalid input or when the sandbox is in the wrong state.
	ErrNotValid = errors.New("not valid")
	// ErrRuntimeUnavailable is returned when the container runtime can't be reached.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")
	// ErrProvisioning is returned when a sandbox was created but one of its
	// dependencies could not be installed.
	ErrProvisioning = errors.New("provisioning failed")
)

func fromInternalSandbox(sb model.Sandbox) Sandbox {
	ports := make([]Port, 0, len(sb.Ports))
	for _, p := range sb.Ports {
		ports = append(ports, Port{ContainerPort: p.ContainerPort, HostPort: p.HostPort, Protocol: p.Protocol})
	}

	return Sandbox{
		ID:            sb.ID,
		Name:          sb.Name,
		Status:        SandboxStatus(sb.Status),
		Image:         sb.Image,
		RestartPolicy: RestartPolicy(sb.RestartPolicy),
		Ports:         ports,
		MemoryBytes:   sb.MemoryBytes,
		CPUs:          float64(sb.NanoCPUs) / 1e9,
		CreatedAt:     sb.CreatedAt,
		StartedAt:     sb.StartedAt,
		StoppedAt:     sb.StoppedAt,
		Error:         sb.Error,
	}
}

func fromInternalSandboxList(sbs []model.Sandbox) []Sandbox {
	result := make([]Sandbox, len(sbs))
	for i, sb := range sbs {
		result[i] = fromInternalSandbox(sb)
	}
	return result
}

func toInternalSandboxConfig(opts CreateSandboxOpts) model.SandboxConfig {
	return model.SandboxConfig{
		Name:          opts.Name,
		BaseImage:     opts.Image,
		Ports:         opts.Ports,
		Env:           opts.Env,
		Volumes:       opts.Volumes,
		Memory:        opts.Memory,
		CPU:           opts.CPUs,
		Dependencies:  opts.Dependencies,
		Command:       opts.Command,
		RestartPolicy: model.RestartPolicy(opts.RestartPolicy),
	}
}

func toInternalCopyPaths(files []CopyFile) []provision.CopyPath {
	result := make([]provision.CopyPath, 0, len(files))
	for _, f := range files {
		result = append(result, provision.CopyPath{SrcLocal: f.Local, DstRemote: f.Remote})
	}
	return result
}

func toInternalUpdate(opts UpdateSandboxOpts) model.SandboxUpdate {
	upd := model.SandboxUpdate{
		Memory: opts.Memory,
		CPU:    opts.CPUs,
	}
	if opts.RestartPolicy != nil {
		rp := model.RestartPolicy(*opts.RestartPolicy)
		upd.RestartPolicy = &rp
	}
	return upd
}

func toInternalStatusFilter(opts *ListSandboxesOpts) *model.SandboxStatus {
	if opts == nil || opts.Status == nil {
		return nil
	}
	s := model.SandboxStatus(*opts.Status)
	return &s
}

func toInternalExecOpts(opts *ExecOpts) model.ExecOpts {
	if opts == nil {
		return model.ExecOpts{}
	}
	return model.ExecOpts{
		WorkingDir: opts.WorkingDir,
		Env:        opts.Env,
		Stdin:      opts.Stdin,
		Stdout:     opts.Stdout,
		Stderr:     opts.Stderr,
	}
}

func fromInternalFileEntry(e model.FileEntry) FileEntry {
	return FileEntry{
		Name:        e.Name,
		Path:        e.Path,
		IsDir:       e.IsDir,
		Permissions: e.Permissions,
		Owner:       e.Owner,
		Group:       e.Group,
		Size:        e.Size,
		ModifiedAt:  e.ModifiedAt,
	}
}

func fromInternalFileEntries(es []model.FileEntry) []FileEntry {
	result := make([]FileEntry, len(es))
	for i, e := range es {
		result[i] = fromInternalFileEntry(e)
	}
	return result
}

// mapError makes the internal errors matchable with the SDK sentinel errors
// while keeping the original message.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrPartialProvisioning):
		return &mappedError{original: err, sentinel: ErrProvisioning}
	case errors.Is(err, model.ErrNotFound):
		return &mappedError{original: err, sentinel: ErrNotFound}
	case errors.Is(err, model.ErrAlreadyExists):
		return &mappedError{original: err, sentinel: ErrAlreadyExists}
	case errors.Is(err, model.ErrNotValid):
		return &mappedError{original: err, sentinel: ErrNotValid}
	case errors.Is(err, model.ErrRuntimeUnavailable):
		return &mappedError{original: err, sentinel: ErrRuntimeUnavailable}
	default:
		return err
	}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool { return target == e.sentinel }

func (e *mappedError) Unwrap() error { return e.original }
