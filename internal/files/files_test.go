package files_test

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbxd/internal/executor/executormock"
	"github.com/slok/sbxd/internal/files"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox/sandboxmock"
)

// testListing is the `stat -c` output of the entries of a directory, in
// directory order.
const testListing = "-rw-r--r--\troot\troot\t5\t1704164646\t./x.txt\n" +
	"lrwxrwxrwx\troot\troot\t5\t1704164648\t./link\n" +
	"this is not a listing row\n" +
	"drwxr-xr-x\tnode\tnode\t4096\t1704164647\t./my dir\n"

func isListScript(script string) bool {
	return strings.Contains(script, "find . -mindepth 1 -maxdepth 1 -exec stat -c")
}

func newService(t *testing.T, mr *executormock.MockRunner, me *sandboxmock.MockEngine) *files.Service {
	svc, err := files.NewService(files.ServiceConfig{Runner: mr, Archiver: me, TempDir: t.TempDir()})
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		cfg    files.ServiceConfig
		expErr bool
	}{
		"Valid configuration should create the service.": {
			cfg: files.ServiceConfig{Runner: &executormock.MockRunner{}, Archiver: &sandboxmock.MockEngine{}},
		},

		"Missing runner should fail.": {
			cfg:    files.ServiceConfig{Archiver: &sandboxmock.MockEngine{}},
			expErr: true,
		},

		"Missing archiver should fail.": {
			cfg:    files.ServiceConfig{Runner: &executormock.MockRunner{}},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := files.NewService(test.cfg)
			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestServiceList(t *testing.T) {
	tests := map[string]struct {
		dir        string
		mock       func(m *executormock.MockRunner)
		expEntries []model.FileEntry
		expErr     error
	}{
		"A listing should be parsed sorted by name and without unparseable rows.": {
			dir: "/app",
			mock: func(m *executormock.MockRunner) {
				m.On("Run", mock.Anything, "c1", mock.MatchedBy(isListScript), "/app").Once().Return(&model.ExecResult{Stdout: testListing}, nil)
			},
			expEntries: []model.FileEntry{
				{
					Name: "link", Path: "/app/link", Permissions: "lrwxrwxrwx", Owner: "root", Group: "root", Size: 5,
					ModifiedAt: time.Date(2024, 1, 2, 3, 4, 8, 0, time.UTC),
				},
				{
					Name: "my dir", Path: "/app/my dir", IsDir: true, Permissions: "drwxr-xr-x", Owner: "node", Group: "node", Size: 4096,
					ModifiedAt: time.Date(2024, 1, 2, 3, 4, 7, 0, time.UTC),
				},
				{
					Name: "x.txt", Path: "/app/x.txt", Permissions: "-rw-r--r--", Owner: "root", Group: "root", Size: 5,
					ModifiedAt: time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
				},
			},
		},

		"A trailing slash on the directory should not change the entry paths.": {
			dir: "/app/",
			mock: func(m *executormock.MockRunner) {
				out := "-rw-r--r--\troot\troot\t5\t1704164646\t./x.txt\n"
				m.On("Run", mock.Anything, "c1", mock.Anything, "/app/").Once().Return(&model.ExecResult{Stdout: out}, nil)
			},
			expEntries: []model.FileEntry{
				{
					Name: "x.txt", Path: "/app/x.txt", Permissions: "-rw-r--r--", Owner: "root", Group: "root", Size: 5,
					ModifiedAt: time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
				},
			},
		},

		"An empty directory should return no entries.": {
			dir: "/empty",
			mock: func(m *executormock.MockRunner) {
				m.On("Run", mock.Anything, "c1", mock.Anything, "/empty").Once().Return(&model.ExecResult{}, nil)
			},
			expEntries: []model.FileEntry{},
		},

		"A regular file should fail as not valid.": {
			dir: "/tmp/x.txt",
			mock: func(m *executormock.MockRunner) {
				m.On("Run", mock.Anything, "c1", mock.Anything, "/tmp/x.txt").Once().Return(&model.ExecResult{ExitCode: 45}, nil)
			},
			expErr: model.ErrNotValid,
		},

		"A missing directory should fail with not found.": {
			dir: "/missing",
			mock: func(m *executormock.MockRunner) {
				m.On("Run", mock.Anything, "c1", mock.Anything, "/missing").Once().Return(&model.ExecResult{ExitCode: 44}, nil)
			},
			expErr: model.ErrNotFound,
		},

		"A failing listing should fail with execution failed.": {
			dir: "/root",
			mock: func(m *executormock.MockRunner) {
				m.On("Run", mock.Anything, "c1", mock.Anything, "/root").Once().
					Return(&model.ExecResult{ExitCode: 2, Stderr: "find: '.': Permission denied"}, nil)
			},
			expErr: model.ErrExecutionFailed,
		},

		"A relative directory should fail as not valid.": {
			dir:    "app",
			mock:   func(m *executormock.MockRunner) {},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mr := executormock.NewMockRunner(t)
			test.mock(mr)

			got, err := newService(t, mr, sandboxmock.NewMockEngine(t)).List(context.TODO(), "c1", test.dir)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}
			require.NoError(err)
			assert.Equal(test.expEntries, got)
		})
	}
}

func TestServiceStat(t *testing.T) {
	tests := map[string]struct {
		out      string
		expEntry *model.FileEntry
		expErr   bool
	}{
		"A directory should be marked as directory.": {
			out: "drwxr-xr-x\troot\troot\t4096\t1704164645\t/app\n",
			expEntry: &model.FileEntry{
				Name: "app", Path: "/app", IsDir: true, Permissions: "drwxr-xr-x", Owner: "root", Group: "root", Size: 4096,
				ModifiedAt: time.Unix(1704164645, 0).UTC(),
			},
		},

		"A file with tabs in its name should be parsed.": {
			out: "-rw-------\tnode\tstaff\t12\t1704164645\t/app/a\tb.txt\n",
			expEntry: &model.FileEntry{
				Name: "a\tb.txt", Path: "/app/a\tb.txt", Permissions: "-rw-------", Owner: "node", Group: "staff", Size: 12,
				ModifiedAt: time.Unix(1704164645, 0).UTC(),
			},
		},

		"Unexpected output should fail.": {
			out:    "garbage\n",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mr := executormock.NewMockRunner(t)
			mr.On("Run", mock.Anything, "c1", mock.Anything, "/app").Once().Return(&model.ExecResult{Stdout: test.out}, nil)

			got, err := newService(t, mr, sandboxmock.NewMockEngine(t)).Stat(context.TODO(), "c1", "/app")
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expEntry, got)
		})
	}
}

func TestServiceSearch(t *testing.T) {
	mr := executormock.NewMockRunner(t)
	mr.On("Run", mock.Anything, "c1", mock.Anything, "/app", "*.js").Once().
		Return(&model.ExecResult{Stdout: "/app/index.js\n/app/lib/util.js\n\n"}, nil)

	got, err := newService(t, mr, sandboxmock.NewMockEngine(t)).Search(context.TODO(), "c1", "/app", "*.js")
	require.NoError(t, err)
	assert.Equal(t, []string{"/app/index.js", "/app/lib/util.js"}, got)
}

func TestServiceCommands(t *testing.T) {
	tests := map[string]struct {
		run       func(svc *files.Service) error
		expScript string
		expPaths  []string
		exitCode  int
		expErr    error
	}{
		"Mkdir should create parents.": {
			run:       func(svc *files.Service) error { return svc.Mkdir(context.TODO(), "c1", "/a/b") },
			expScript: `mkdir -p -- "$1"`,
			expPaths:  []string{"/a/b"},
		},

		"Delete should not recurse by default.": {
			run:       func(svc *files.Service) error { return svc.Delete(context.TODO(), "c1", "/a/f", false) },
			expScript: `rm -f -- "$1"`,
			expPaths:  []string{"/a/f"},
		},

		"Delete recursive should remove the tree.": {
			run:       func(svc *files.Service) error { return svc.Delete(context.TODO(), "c1", "/a", true) },
			expScript: `rm -rf -- "$1"`,
			expPaths:  []string{"/a"},
		},

		"Move should move source to destination.": {
			run:       func(svc *files.Service) error { return svc.Move(context.TODO(), "c1", "/a", "/b") },
			expScript: `mv -- "$1" "$2"`,
			expPaths:  []string{"/a", "/b"},
		},

		"Copy should copy preserving attributes.": {
			run:       func(svc *files.Service) error { return svc.Copy(context.TODO(), "c1", "/a", "/b") },
			expScript: `cp -a -- "$1" "$2"`,
			expPaths:  []string{"/a", "/b"},
		},

		"Moving a missing source should fail with not found.": {
			run:       func(svc *files.Service) error { return svc.Move(context.TODO(), "c1", "/a", "/b") },
			expScript: `mv -- "$1" "$2"`,
			expPaths:  []string{"/a", "/b"},
			exitCode:  44,
			expErr:    model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mr := executormock.NewMockRunner(t)
			args := []any{mock.Anything, "c1", mock.MatchedBy(func(s string) bool { return strings.HasSuffix(s, test.expScript) })}
			for _, p := range test.expPaths {
				args = append(args, p)
			}
			mr.On("Run", args...).Once().Return(&model.ExecResult{ExitCode: test.exitCode}, nil)

			err := test.run(newService(t, mr, sandboxmock.NewMockEngine(t)))
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServiceInvalidPaths(t *testing.T) {
	svc := newService(t, executormock.NewMockRunner(t), sandboxmock.NewMockEngine(t))
	ctx := context.TODO()

	assert.ErrorIs(t, svc.Delete(ctx, "c1", "/", true), model.ErrNotValid)
	assert.ErrorIs(t, svc.Move(ctx, "c1", "/a", "b"), model.ErrNotValid)
	assert.ErrorIs(t, svc.Write(ctx, "c1", "x.txt", strings.NewReader("")), model.ErrNotValid)
	_, err := svc.Read(ctx, "c1", "x.txt")
	assert.ErrorIs(t, err, model.ErrNotValid)
	_, err = svc.Search(ctx, "c1", "/", "")
	assert.ErrorIs(t, err, model.ErrNotValid)
}

// readTar returns the single entry of a tar archive.
func readTar(t *testing.T, r io.Reader) (*tar.Header, []byte) {
	tr := tar.NewReader(r)
	hdr, err := tr.Next()
	require.NoError(t, err)
	data, err := io.ReadAll(tr)
	require.NoError(t, err)
	_, err = tr.Next()
	require.ErrorIs(t, err, io.EOF)
	return hdr, data
}

func TestServiceWriteRead(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// In memory sandbox filesystem.
	fs := map[string][]byte{}

	me := sandboxmock.NewMockEngine(t)
	me.On("Status", mock.Anything, "c1").Return(&model.Sandbox{ID: "c1", Status: model.SandboxStatusRunning}, nil)
	me.On("PutArchive", mock.Anything, "c1", "/tmp", mock.Anything).Once().Run(func(args mock.Arguments) {
		hdr, data := readTar(t, args.Get(3).(io.Reader))
		fs[filepath.Join(args.String(2), hdr.Name)] = data
	}).Return(nil)

	mr := executormock.NewMockRunner(t)
	mr.On("Run", mock.Anything, "c1", mock.Anything, "/tmp/x.txt").Once().Return(
		func(_ context.Context, _ string, _ string, args ...string) (*model.ExecResult, error) {
			return &model.ExecResult{Stdout: string(fs[args[0]])}, nil
		})

	tmpDir := t.TempDir()
	svc, err := files.NewService(files.ServiceConfig{Runner: mr, Archiver: me, TempDir: tmpDir})
	require.NoError(err)

	err = svc.Write(context.TODO(), "c1", "/tmp/x.txt", strings.NewReader("hello"))
	require.NoError(err)

	got, err := svc.Read(context.TODO(), "c1", "/tmp/x.txt")
	require.NoError(err)
	assert.Equal("hello", got)

	// The staging file is always removed.
	staged, err := os.ReadDir(tmpDir)
	require.NoError(err)
	assert.Empty(staged)
}

func TestServiceCopyTo(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	local := filepath.Join(t.TempDir(), "bin.dat")
	content := []byte{0x00, 0xff, 0x10, '\n', 0x00}
	require.NoError(os.WriteFile(local, content, 0o755))

	var gotHdr *tar.Header
	var gotData []byte
	me := sandboxmock.NewMockEngine(t)
	me.On("Status", mock.Anything, "c1").Once().Return(&model.Sandbox{ID: "c1", Status: model.SandboxStatusRunning}, nil)
	me.On("PutArchive", mock.Anything, "c1", "/opt/bin", mock.Anything).Once().Run(func(args mock.Arguments) {
		gotHdr, gotData = readTar(t, args.Get(3).(io.Reader))
	}).Return(nil)

	svc := newService(t, executormock.NewMockRunner(t), me)
	require.NoError(svc.CopyTo(context.TODO(), "c1", local, "/opt/bin/tool"))

	assert.Equal("tool", gotHdr.Name)
	assert.Equal(int64(0o755), gotHdr.Mode)
	assert.Equal(content, gotData)
}

func TestServiceCopyToErrors(t *testing.T) {
	tests := map[string]struct {
		local  func(t *testing.T) string
		status model.SandboxStatus
		expErr error
	}{
		"A stopped sandbox should fail as not valid.": {
			local:  func(t *testing.T) string { return "/does/not/matter" },
			status: model.SandboxStatusStopped,
			expErr: model.ErrNotValid,
		},

		"A missing local file should fail with not found.": {
			local:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing") },
			status: model.SandboxStatusRunning,
			expErr: model.ErrNotFound,
		},

		"A local directory should fail as not valid.": {
			local:  func(t *testing.T) string { return t.TempDir() },
			status: model.SandboxStatusRunning,
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			me := sandboxmock.NewMockEngine(t)
			me.On("Status", mock.Anything, "c1").Once().Return(&model.Sandbox{ID: "c1", Status: test.status}, nil)

			err := newService(t, executormock.NewMockRunner(t), me).CopyTo(context.TODO(), "c1", test.local(t), "/app/file")
			assert.ErrorIs(t, err, test.expErr)
		})
	}
}

func newArchive(t *testing.T, hdr *tar.Header, data []byte) io.ReadCloser {
	var b bytes.Buffer
	tw := tar.NewWriter(&b)
	require.NoError(t, tw.WriteHeader(hdr))
	if len(data) > 0 {
		_, err := tw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return io.NopCloser(&b)
}

func TestServiceCopyFrom(t *testing.T) {
	tests := map[string]struct {
		mock       func(t *testing.T, m *sandboxmock.MockEngine)
		expContent []byte
		expErr     error
	}{
		"A regular file should be downloaded.": {
			mock: func(t *testing.T, m *sandboxmock.MockEngine) {
				data := []byte("binary\x00content")
				m.On("GetArchive", mock.Anything, "c1", "/app/out.bin").Once().
					Return(newArchive(t, &tar.Header{Typeflag: tar.TypeReg, Name: "out.bin", Mode: 0o644, Size: int64(len(data))}, data), nil)
			},
			expContent: []byte("binary\x00content"),
		},

		"A directory should fail as not valid.": {
			mock: func(t *testing.T, m *sandboxmock.MockEngine) {
				m.On("GetArchive", mock.Anything, "c1", "/app/out.bin").Once().
					Return(newArchive(t, &tar.Header{Typeflag: tar.TypeDir, Name: "out.bin/", Mode: 0o755}, nil), nil)
			},
			expErr: model.ErrNotValid,
		},

		"A missing file should fail with not found.": {
			mock: func(t *testing.T, m *sandboxmock.MockEngine) {
				m.On("GetArchive", mock.Anything, "c1", "/app/out.bin").Once().Return(nil, model.ErrNotFound)
			},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			me := sandboxmock.NewMockEngine(t)
			me.On("Status", mock.Anything, "c1").Once().Return(&model.Sandbox{ID: "c1", Status: model.SandboxStatusRunning}, nil)
			test.mock(t, me)

			local := filepath.Join(t.TempDir(), "out.bin")
			err := newService(t, executormock.NewMockRunner(t), me).CopyFrom(context.TODO(), "c1", "/app/out.bin", local)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				_, statErr := os.Stat(local)
				assert.True(os.IsNotExist(statErr))
				return
			}
			require.NoError(err)

			got, err := os.ReadFile(local)
			require.NoError(err)
			assert.Equal(test.expContent, got)
		})
	}
}
