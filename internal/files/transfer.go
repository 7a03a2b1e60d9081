package files

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/slok/sbxd/internal/model"
)

// Write replaces the content of a file. The content is staged in a local
// temporary file and imported through the archive boundary, so it's binary safe.
func (s *Service) Write(ctx context.Context, id string, file string, content io.Reader) error {
	if err := validatePaths(file); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.tempDir, "sbxd-write-*")
	if err != nil {
		return fmt.Errorf("could not create staging file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warningf("Could not remove staging file %s: %s", tmp.Name(), err)
		}
	}()

	if _, err := io.Copy(tmp, content); err != nil {
		return fmt.Errorf("could not stage content: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("could not stage content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not stage content: %w", err)
	}

	return s.CopyTo(ctx, id, tmp.Name(), file)
}

// CopyTo uploads a local regular file to sandboxPath. The destination directory must exist.
func (s *Service) CopyTo(ctx context.Context, id string, localPath string, sandboxPath string) error {
	if err := validatePaths(sandboxPath); err != nil {
		return err
	}
	if err := s.ensureRunning(ctx, id); err != nil {
		return err
	}

	f, err := os.Open(localPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("local file %s: %w", localPath, model.ErrNotFound)
		}
		return fmt.Errorf("could not open local file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("could not stat local file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("local path %s is not a regular file: %w", localPath, model.ErrNotValid)
	}

	var archive bytes.Buffer
	tw := tar.NewWriter(&archive)
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     path.Base(sandboxPath),
		Mode:     int64(info.Mode().Perm()),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("could not write archive header: %w", err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("could not write archive content: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("could not close archive: %w", err)
	}

	if err := s.archiver.PutArchive(ctx, id, path.Dir(sandboxPath), &archive); err != nil {
		return fmt.Errorf("could not upload %s: %w", sandboxPath, err)
	}

	s.logger.Debugf("Uploaded %s to %s:%s (%d bytes)", localPath, id, sandboxPath, info.Size())
	return nil
}

// CopyFrom downloads a sandbox regular file to localPath. The content is streamed.
func (s *Service) CopyFrom(ctx context.Context, id string, sandboxPath string, localPath string) (err error) {
	if err := validatePaths(sandboxPath); err != nil {
		return err
	}
	if err := s.ensureRunning(ctx, id); err != nil {
		return err
	}

	rc, err := s.archiver.GetArchive(ctx, id, sandboxPath)
	if err != nil {
		return fmt.Errorf("could not download %s: %w", sandboxPath, err)
	}
	defer rc.Close()

	tr := tar.NewReader(rc)
	hdr, err := tr.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty archive for %s: %w", sandboxPath, model.ErrNotFound)
		}
		return fmt.Errorf("could not read archive: %w", err)
	}
	if hdr.Typeflag != tar.TypeReg {
		return fmt.Errorf("sandbox path %s is not a regular file: %w", sandboxPath, model.ErrNotValid)
	}

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("could not create local file: %w", err)
	}
	defer func() {
		cerr := f.Close()
		if err == nil && cerr != nil {
			err = fmt.Errorf("could not close local file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(localPath)
		}
	}()

	n, err := io.Copy(f, tr)
	if err != nil {
		return fmt.Errorf("could not write local file: %w", err)
	}

	s.logger.Debugf("Downloaded %s:%s to %s (%d bytes)", id, sandboxPath, localPath, n)
	return nil
}

func (s *Service) ensureRunning(ctx context.Context, id string) error {
	sb, err := s.archiver.Status(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get sandbox: %w", err)
	}
	if sb.Status != model.SandboxStatusRunning {
		return fmt.Errorf("sandbox %s is not running (status: %s): %w", id, sb.Status, model.ErrNotValid)
	}
	return nil
}
