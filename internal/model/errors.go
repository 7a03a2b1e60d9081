package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrRuntimeUnavailable is returned when the container runtime can't be reached.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")
	// ErrExecutionFailed is returned when a command ran but reported a failure.
	ErrExecutionFailed = errors.New("execution failed")
	// ErrPartialProvisioning is returned when a sandbox is running but one of its
	// dependencies could not be installed.
	ErrPartialProvisioning = errors.New("partial provisioning failure")
)

// ProvisioningError is returned by the creation flow when the sandbox has been
// created and started but the dependency pipeline failed. The sandbox is left
// running in a degraded state.
type ProvisioningError struct {
	SandboxID  string
	Dependency string
	Err        error
}

func (e *ProvisioningError) Error() string {
	if e.Dependency == "" {
		return fmt.Sprintf("sandbox %s provisioning failed: %s", e.SandboxID, e.Err)
	}
	return fmt.Sprintf("sandbox %s provisioning failed on %q: %s", e.SandboxID, e.Dependency, e.Err)
}

func (e *ProvisioningError) Unwrap() []error {
	return []error{ErrPartialProvisioning, e.Err}
}

// HTTPStatus maps an error to the HTTP status code upstream callers should use.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotValid):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrRuntimeUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
