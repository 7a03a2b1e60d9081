package files

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
)

// Archiver is the runtime archive boundary used for byte-exact transfers.
type Archiver interface {
	Status(ctx context.Context, id string) (*model.Sandbox, error)
	PutArchive(ctx context.Context, id string, dstDir string, archive io.Reader) error
	GetArchive(ctx context.Context, id string, srcPath string) (io.ReadCloser, error)
}

// ServiceConfig is the configuration for the files service.
type ServiceConfig struct {
	Runner   executor.Runner
	Archiver Archiver
	// TempDir is where writes are staged, defaults to the OS temp dir.
	TempDir string
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Runner == nil {
		return fmt.Errorf("runner is required")
	}
	if c.Archiver == nil {
		return fmt.Errorf("archiver is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "files.Service"})
	return nil
}

// Service manages files inside sandboxes. Metadata and text operations go
// through the command executor, content transfers through the archive boundary.
type Service struct {
	runner   executor.Runner
	archiver Archiver
	tempDir  string
	logger   log.Logger
}

// NewService returns a new files service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		runner:   cfg.Runner,
		archiver: cfg.Archiver,
		tempDir:  cfg.TempDir,
		logger:   cfg.Logger,
	}, nil
}

// Exit codes used by the guards of the scripts.
const (
	notFoundExitCode = 44
	notDirExitCode   = 45
)

const (
	existsGuard = `test -e "$1" || test -L "$1" || exit 44; `
	dirGuard    = `test -d "$1" || exit 45; `
)

// run runs a script with the paths as positional arguments and classifies the result.
func (s *Service) run(ctx context.Context, id string, script string, paths ...string) (*model.ExecResult, error) {
	res, err := s.runner.Run(ctx, id, script, paths...)
	if err != nil {
		return nil, err
	}
	if res.ExitCode == notFoundExitCode {
		return nil, fmt.Errorf("path %s in sandbox %s: %w", paths[0], id, model.ErrNotFound)
	}
	if res.ExitCode == notDirExitCode {
		return nil, fmt.Errorf("path %s in sandbox %s is not a directory: %w", paths[0], id, model.ErrNotValid)
	}
	if err := executor.CheckFailure(res); err != nil {
		return nil, fmt.Errorf("sandbox %s: %w", id, err)
	}
	return res, nil
}

func validatePaths(paths ...string) error {
	for _, p := range paths {
		if !path.IsAbs(p) {
			return fmt.Errorf("path %q must be absolute: %w", p, model.ErrNotValid)
		}
	}
	return nil
}

// List returns the entries of a directory, without `.` and `..`. The listing
// only relies on `find` and `stat -c`, both available on GNU and BusyBox images.
func (s *Service) List(ctx context.Context, id string, dir string) ([]model.FileEntry, error) {
	if err := validatePaths(dir); err != nil {
		return nil, err
	}

	res, err := s.run(ctx, id, existsGuard+dirGuard+`cd -- "$1" && find . -mindepth 1 -maxdepth 1 -exec stat -c '`+statFormat+`' {} +`, dir)
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", dir, err)
	}

	return parseListing(dir, res.Stdout), nil
}

// Read returns the content of a file as text.
func (s *Service) Read(ctx context.Context, id string, file string) (string, error) {
	if err := validatePaths(file); err != nil {
		return "", err
	}

	res, err := s.run(ctx, id, existsGuard+`cat -- "$1"`, file)
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", file, err)
	}

	return res.Stdout, nil
}

// Mkdir creates a directory and its parents, existing directories are ignored.
func (s *Service) Mkdir(ctx context.Context, id string, dir string) error {
	if err := validatePaths(dir); err != nil {
		return err
	}

	if _, err := s.run(ctx, id, `mkdir -p -- "$1"`, dir); err != nil {
		return fmt.Errorf("could not create directory %s: %w", dir, err)
	}
	return nil
}

// Delete removes a file, or a directory tree when recursive is set. Deleting a
// missing path succeeds.
func (s *Service) Delete(ctx context.Context, id string, p string, recursive bool) error {
	if err := validatePaths(p); err != nil {
		return err
	}
	if path.Clean(p) == "/" {
		return fmt.Errorf("refusing to delete the root directory: %w", model.ErrNotValid)
	}

	script := `rm -f -- "$1"`
	if recursive {
		script = `rm -rf -- "$1"`
	}
	if _, err := s.run(ctx, id, script, p); err != nil {
		return fmt.Errorf("could not delete %s: %w", p, err)
	}
	return nil
}

// Move moves or renames a file or directory.
func (s *Service) Move(ctx context.Context, id string, src, dst string) error {
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	if _, err := s.run(ctx, id, existsGuard+`mv -- "$1" "$2"`, src, dst); err != nil {
		return fmt.Errorf("could not move %s to %s: %w", src, dst, err)
	}
	return nil
}

// Copy copies a file or directory tree preserving its attributes.
func (s *Service) Copy(ctx context.Context, id string, src, dst string) error {
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	if _, err := s.run(ctx, id, existsGuard+`cp -a -- "$1" "$2"`, src, dst); err != nil {
		return fmt.Errorf("could not copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// Stat returns the information of a single file or directory.
func (s *Service) Stat(ctx context.Context, id string, p string) (*model.FileEntry, error) {
	if err := validatePaths(p); err != nil {
		return nil, err
	}

	res, err := s.run(ctx, id, existsGuard+`stat -c '`+statFormat+`' -- "$1"`, p)
	if err != nil {
		return nil, fmt.Errorf("could not stat %s: %w", p, err)
	}

	entry, err := parseStat(strings.TrimRight(res.Stdout, "\n"))
	if err != nil {
		return nil, fmt.Errorf("could not stat %s: %w", p, err)
	}
	return entry, nil
}

// Search returns the absolute paths of the regular files under dir whose name
// matches the shell pattern.
func (s *Service) Search(ctx context.Context, id string, dir string, pattern string) ([]string, error) {
	if err := validatePaths(dir); err != nil {
		return nil, err
	}
	if pattern == "" {
		return nil, fmt.Errorf("search pattern is required: %w", model.ErrNotValid)
	}

	res, err := s.run(ctx, id, existsGuard+`find "$1" -type f -name "$2"`, dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("could not search %s: %w", dir, err)
	}

	found := []string{}
	for _, line := range strings.Split(res.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			found = append(found, line)
		}
	}
	return found, nil
}
