package docker

import (
	"context"
	"io"

	"github.com/docker/docker/api/types/container"
)

// PutArchive extracts a tar archive into dstDir inside the sandbox.
func (e *Engine) PutArchive(ctx context.Context, id string, dstDir string, archive io.Reader) error {
	err := e.measure(ctx, "copy_to_container", func() error {
		return e.client.CopyToContainer(ctx, id, dstDir, archive, container.CopyToContainerOptions{})
	})
	if err != nil {
		return classifyErr("could not copy archive into sandbox", id, err)
	}
	return nil
}

// GetArchive returns a tar archive stream of srcPath inside the sandbox.
// The caller must close the returned reader.
func (e *Engine) GetArchive(ctx context.Context, id string, srcPath string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	err := e.measure(ctx, "copy_from_container", func() (err error) {
		rc, _, err = e.client.CopyFromContainer(ctx, id, srcPath)
		return err
	})
	if err != nil {
		return nil, classifyErr("could not copy archive from sandbox", id, err)
	}
	return rc, nil
}
