package executor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbxd/internal/executor"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox/sandboxmock"
)

func TestNewExecutor(t *testing.T) {
	tests := map[string]struct {
		cfg    executor.ExecutorConfig
		expErr bool
	}{
		"Valid configuration should create the executor.": {
			cfg: executor.ExecutorConfig{Engine: &sandboxmock.MockEngine{}, Logger: log.Noop},
		},

		"Missing logger should use noop logger.": {
			cfg: executor.ExecutorConfig{Engine: &sandboxmock.MockEngine{}},
		},

		"Missing engine should fail.": {
			cfg:    executor.ExecutorConfig{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			e, err := executor.NewExecutor(test.cfg)
			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, e)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, e)
			}
		})
	}
}

func TestExecutorRun(t *testing.T) {
	tests := map[string]struct {
		command   string
		args      []string
		mock      func(m *sandboxmock.MockEngine)
		expResult *model.ExecResult
		expErr    error
	}{
		"A command should be run with sh and positional args.": {
			command: `echo "$1"`,
			args:    []string{"hello world"},
			mock: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "c1").Once().Return(&model.Sandbox{ID: "c1", Name: "web", Status: model.SandboxStatusRunning}, nil)
				m.On("Exec", mock.Anything, "c1", []string{"sh", "-c", `echo "$1"`, "sh", "hello world"}, model.ExecOpts{}).Once().
					Return(&model.ExecResult{ExitCode: 0, Output: "hello world\n", Stdout: "hello world\n"}, nil)
			},
			expResult: &model.ExecResult{ExitCode: 0, Output: "hello world\n", Stdout: "hello world\n"},
		},

		"A failing command should return the result with the exit code.": {
			command: "exit 3",
			mock: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "c1").Once().Return(&model.Sandbox{ID: "c1", Status: model.SandboxStatusRunning}, nil)
				m.On("Exec", mock.Anything, "c1", []string{"sh", "-c", "exit 3", "sh"}, model.ExecOpts{}).Once().
					Return(&model.ExecResult{ExitCode: 3}, nil)
			},
			expResult: &model.ExecResult{ExitCode: 3},
		},

		"A stopped sandbox should fail as not valid.": {
			command: "ls",
			mock: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "c1").Once().Return(&model.Sandbox{ID: "c1", Status: model.SandboxStatusStopped}, nil)
			},
			expErr: model.ErrNotValid,
		},

		"A missing sandbox should fail as not found.": {
			command: "ls",
			mock: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "c1").Once().Return(nil, model.ErrNotFound)
			},
			expErr: model.ErrNotFound,
		},

		"An empty command should fail as not valid.": {
			command: " ",
			mock:    func(m *sandboxmock.MockEngine) {},
			expErr:  model.ErrNotValid,
		},

		"An exec stream error should be returned.": {
			command: "ls",
			mock: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "c1").Once().Return(&model.Sandbox{ID: "c1", Status: model.SandboxStatusRunning}, nil)
				m.On("Exec", mock.Anything, "c1", mock.Anything, mock.Anything).Once().Return(nil, model.ErrRuntimeUnavailable)
			},
			expErr: model.ErrRuntimeUnavailable,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := sandboxmock.NewMockEngine(t)
			test.mock(m)

			e, err := executor.NewExecutor(executor.ExecutorConfig{Engine: m})
			require.NoError(err)

			res, err := e.Run(context.TODO(), "c1", test.command, test.args...)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}
			require.NoError(err)
			assert.Equal(test.expResult, res)
		})
	}
}

func TestCheckFailure(t *testing.T) {
	tests := map[string]struct {
		res      *model.ExecResult
		patterns []string
		expErr   bool
	}{
		"A zero exit code without patterns should succeed.": {
			res: &model.ExecResult{ExitCode: 0, Stderr: "E: Unable to locate package foo"},
		},

		"A non-zero exit code should fail.": {
			res:    &model.ExecResult{ExitCode: 1},
			expErr: true,
		},

		"A zero exit code with a matching pattern should fail.": {
			res:      &model.ExecResult{ExitCode: 0, Stderr: "E: Unable to locate package foo\n"},
			patterns: executor.DefaultFailurePatterns,
			expErr:   true,
		},

		"A zero exit code with non-matching patterns should succeed.": {
			res:      &model.ExecResult{ExitCode: 0, Stderr: "warning: something\n"},
			patterns: executor.DefaultFailurePatterns,
		},

		"A missing result should fail.": {
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := executor.CheckFailure(test.res, test.patterns...)
			if test.expErr {
				assert.True(t, errors.Is(err, model.ErrExecutionFailed))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
