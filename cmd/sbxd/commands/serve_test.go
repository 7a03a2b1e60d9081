package commands

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox/sandboxmock"
)

func TestHealthHandler(t *testing.T) {
	tests := map[string]struct {
		pingErr   error
		expStatus int
	}{
		"A reachable runtime should be healthy.": {
			expStatus: http.StatusOK,
		},

		"An unreachable runtime should be unavailable.": {
			pingErr:   fmt.Errorf("ping: %w", model.ErrRuntimeUnavailable),
			expStatus: http.StatusServiceUnavailable,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			me := sandboxmock.NewMockEngine(t)
			me.On("Ping", mock.Anything).Once().Return(test.pingErr)

			w := httptest.NewRecorder()
			healthHandler(me, log.Noop).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, test.expStatus, w.Code)
		})
	}
}
