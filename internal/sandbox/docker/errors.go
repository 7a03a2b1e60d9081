package docker

import (
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/client"

	"github.com/slok/sbxd/internal/model"
)

// classifyErr translates a runtime error into the application error kinds and
// adds the operation context.
func classifyErr(op, id string, err error) error {
	switch {
	case cerrdefs.IsNotFound(err):
		return fmt.Errorf("%s %s: %w: %w", op, id, model.ErrNotFound, err)
	case client.IsErrConnectionFailed(err):
		return fmt.Errorf("%s %s: %w: %w", op, id, model.ErrRuntimeUnavailable, err)
	case cerrdefs.IsInvalidArgument(err), cerrdefs.IsConflict(err):
		return fmt.Errorf("%s %s: %w: %w", op, id, model.ErrNotValid, err)
	default:
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
}
