package docker

import (
	"context"
	"fmt"
	"io"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/pkg/jsonmessage"
)

// ensureImage pulls the image if it's not present locally and blocks until
// the pull has finished.
func (e *Engine) ensureImage(ctx context.Context, ref string) error {
	err := e.measure(ctx, "image_inspect", func() error {
		_, err := e.client.ImageInspect(ctx, ref)
		return err
	})
	if err == nil {
		e.logger.Debugf("Image %s already present", ref)
		return nil
	}
	if !cerrdefs.IsNotFound(err) {
		return classifyErr("could not inspect image", ref, err)
	}

	e.logger.Infof("Pulling image: %s", ref)
	return e.measure(ctx, "image_pull", func() error {
		pullResp, err := e.client.ImagePull(ctx, ref, image.PullOptions{})
		if err != nil {
			return classifyErr("could not pull image", ref, err)
		}
		defer pullResp.Close()

		// The pull is only done once the progress stream ends, errors are
		// reported inside the stream.
		if err := jsonmessage.DisplayJSONMessagesStream(pullResp, io.Discard, 0, false, nil); err != nil {
			return fmt.Errorf("could not pull image %s: %w", ref, err)
		}

		e.logger.Infof("Pulled image: %s", ref)
		return nil
	})
}
