package copy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
)

//go:generate mockery --case underscore --output copymock --outpkg copymock --name Transferrer --structname MockTransferrer

// Transferrer moves single files between the host and a sandbox.
type Transferrer interface {
	CopyTo(ctx context.Context, id string, localPath string, sandboxPath string) error
	CopyFrom(ctx context.Context, id string, sandboxPath string, localPath string) error
}

// ServiceConfig is the configuration for the copy service.
type ServiceConfig struct {
	Transferrer Transferrer
	Logger      log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Transferrer == nil {
		return fmt.Errorf("transferrer is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Copy"})
	return nil
}

// Service copies files between the host and sandboxes.
type Service struct {
	transferrer Transferrer
	logger      log.Logger
}

// NewService creates a new copy service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		transferrer: cfg.Transferrer,
		logger:      cfg.Logger,
	}, nil
}

// Request has the two `cp` arguments, exactly one of them is a sandbox
// reference written as `name-or-id:/absolute/path`.
type Request struct {
	Source      string
	Destination string
}

// Transfer is a resolved copy between the host and a sandbox.
type Transfer struct {
	Sandbox string
	Local   string
	Remote  string
	// Upload is true for host to sandbox copies.
	Upload bool
}

// ParseTransfer resolves the direction and paths of a copy.
func ParseTransfer(src, dst string) (Transfer, error) {
	_, _, srcRemote := strings.Cut(src, ":")
	_, _, dstRemote := strings.Cut(dst, ":")

	var tr Transfer
	var ref string
	switch {
	case srcRemote && dstRemote:
		return Transfer{}, fmt.Errorf("copies between sandboxes are not supported, one side must be a host path: %w", model.ErrNotValid)
	case srcRemote:
		ref, tr.Local = src, dst
	case dstRemote:
		ref, tr.Local, tr.Upload = dst, src, true
	default:
		return Transfer{}, fmt.Errorf("one side must be a sandbox path like my-sandbox:/path: %w", model.ErrNotValid)
	}

	tr.Sandbox, tr.Remote, _ = strings.Cut(ref, ":")
	if tr.Sandbox == "" || !path.IsAbs(tr.Remote) {
		return Transfer{}, fmt.Errorf("invalid sandbox path %q, expected name-or-id:/absolute/path: %w", ref, model.ErrNotValid)
	}
	if tr.Local == "" {
		return Transfer{}, fmt.Errorf("host path is required: %w", model.ErrNotValid)
	}

	return tr, nil
}

// Run copies a single file. When the destination is a directory the source
// file name is kept.
func (s *Service) Run(ctx context.Context, req Request) error {
	tr, err := ParseTransfer(req.Source, req.Destination)
	if err != nil {
		return err
	}

	if tr.Upload {
		if _, err := os.Stat(tr.Local); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("host path %s does not exist: %w", tr.Local, model.ErrNotFound)
		}
		if strings.HasSuffix(tr.Remote, "/") {
			tr.Remote = path.Join(tr.Remote, filepath.Base(tr.Local))
		}

		s.logger.Infof("Uploading %s to %s:%s", tr.Local, tr.Sandbox, tr.Remote)
		if err := s.transferrer.CopyTo(ctx, tr.Sandbox, tr.Local, tr.Remote); err != nil {
			return fmt.Errorf("could not upload %s: %w", tr.Local, err)
		}
		return nil
	}

	if isHostDir(tr.Local) {
		tr.Local = filepath.Join(tr.Local, path.Base(tr.Remote))
	}

	s.logger.Infof("Downloading %s:%s to %s", tr.Sandbox, tr.Remote, tr.Local)
	if err := s.transferrer.CopyFrom(ctx, tr.Sandbox, tr.Remote, tr.Local); err != nil {
		return fmt.Errorf("could not download %s: %w", tr.Remote, err)
	}
	return nil
}

func isHostDir(p string) bool {
	if strings.HasSuffix(p, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
