package remove_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbxd/internal/app/remove"
	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox/sandboxmock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config remove.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: remove.ServiceConfig{Engine: &sandboxmock.MockEngine{}, Logger: log.Noop},
		},
		"missing engine should fail": {
			config: remove.ServiceConfig{Logger: log.Noop},
			expErr: true,
		},
		"nil logger should default to noop": {
			config: remove.ServiceConfig{Engine: &sandboxmock.MockEngine{}},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := remove.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		mockEngine func(m *sandboxmock.MockEngine)
		req        remove.Request
		expStatus  model.SandboxStatus
		expErr     error
	}{
		"remove stopped sandbox": {
			mockEngine: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "my-sandbox").Once().Return(&model.Sandbox{
					ID: "abc123", Name: "my-sandbox", Status: model.SandboxStatusStopped, CreatedAt: createdAt,
				}, nil)
				m.On("Remove", mock.Anything, "abc123", false).Once().Return(nil)
			},
			req:       remove.Request{NameOrID: "my-sandbox"},
			expStatus: model.SandboxStatusStopped,
		},
		"running sandbox without force is stopped first": {
			mockEngine: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "my-sandbox").Once().Return(&model.Sandbox{
					ID: "abc123", Name: "my-sandbox", Status: model.SandboxStatusRunning, CreatedAt: createdAt,
				}, nil)
				stop := m.On("Stop", mock.Anything, "abc123", model.DefaultStopGracePeriod).Once().Return(nil)
				rm := m.On("Remove", mock.Anything, "abc123", false).Once().Return(nil)
				mock.InOrder(stop, rm)
			},
			req:       remove.Request{NameOrID: "my-sandbox"},
			expStatus: model.SandboxStatusStopped,
		},
		"running sandbox uses the requested grace period": {
			mockEngine: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "my-sandbox").Once().Return(&model.Sandbox{
					ID: "abc123", Name: "my-sandbox", Status: model.SandboxStatusRunning, CreatedAt: createdAt,
				}, nil)
				m.On("Stop", mock.Anything, "abc123", 2*time.Second).Once().Return(nil)
				m.On("Remove", mock.Anything, "abc123", false).Once().Return(nil)
			},
			req:       remove.Request{NameOrID: "my-sandbox", StopGracePeriod: 2 * time.Second},
			expStatus: model.SandboxStatusStopped,
		},
		"force remove running sandbox skips the stop": {
			mockEngine: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "my-sandbox").Once().Return(&model.Sandbox{
					ID: "abc123", Name: "my-sandbox", Status: model.SandboxStatusRunning, CreatedAt: createdAt,
				}, nil)
				m.On("Remove", mock.Anything, "abc123", true).Once().Return(nil)
			},
			req:       remove.Request{NameOrID: "my-sandbox", Force: true},
			expStatus: model.SandboxStatusRunning,
		},
		"sandbox not found": {
			mockEngine: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "nonexistent").Once().Return(nil, fmt.Errorf("sandbox nonexistent: %w", model.ErrNotFound))
			},
			req:    remove.Request{NameOrID: "nonexistent"},
			expErr: model.ErrNotFound,
		},
		"stop error aborts the removal": {
			mockEngine: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "my-sandbox").Once().Return(&model.Sandbox{
					ID: "abc123", Name: "my-sandbox", Status: model.SandboxStatusRunning, CreatedAt: createdAt,
				}, nil)
				m.On("Stop", mock.Anything, "abc123", model.DefaultStopGracePeriod).Once().Return(model.ErrRuntimeUnavailable)
			},
			req:    remove.Request{NameOrID: "my-sandbox"},
			expErr: model.ErrRuntimeUnavailable,
		},
		"engine error propagates": {
			mockEngine: func(m *sandboxmock.MockEngine) {
				m.On("Status", mock.Anything, "my-sandbox").Once().Return(&model.Sandbox{
					ID: "abc123", Name: "my-sandbox", Status: model.SandboxStatusStopped, CreatedAt: createdAt,
				}, nil)
				m.On("Remove", mock.Anything, "abc123", false).Once().Return(model.ErrNotFound)
			},
			req:    remove.Request{NameOrID: "my-sandbox"},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mEngine := sandboxmock.NewMockEngine(t)
			test.mockEngine(mEngine)

			svc, err := remove.NewService(remove.ServiceConfig{
				Engine: mEngine,
				Logger: log.Noop,
			})
			require.NoError(err)

			result, err := svc.Run(context.Background(), test.req)

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				assert.Nil(result)
			} else {
				require.NoError(err)
				assert.Equal("abc123", result.ID)
				assert.Equal(test.expStatus, result.Status)
			}
		})
	}
}
