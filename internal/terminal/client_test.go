package terminal_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox/sandboxmock"
	"github.com/slok/sbxd/internal/terminal"
)

func TestClientSession(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	tty := newFakeTTY(7)
	me := sandboxmock.NewMockEngine(t)
	me.On("Attach", mock.Anything, "c1", terminal.DefaultShell).Once().Return(tty, nil)

	_, srv := newServer(t, terminal.BridgeConfig{Attacher: me, Token: "s3cr3t"})

	// The HTTP scheme is accepted and mapped to the WebSocket one.
	c, err := terminal.Dial(context.TODO(), terminal.ClientConfig{Addr: srv.URL, SandboxID: "c1", Token: "s3cr3t"})
	require.NoError(err)
	defer c.Close()

	require.NoError(c.Resize(80, 24))
	select {
	case got := <-tty.resizes:
		assert.Equal([2]uint{80, 24}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for resize")
	}

	type result struct {
		code int
		err  error
	}
	var stdout bytes.Buffer
	resC := make(chan result, 1)
	go func() {
		code, err := c.Run(context.TODO(), strings.NewReader("exit 7\n"), &stdout)
		resC <- result{code: code, err: err}
	}()

	select {
	case got := <-tty.input:
		assert.Equal([]byte("exit 7\n"), got)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for input")
	}

	_, err = tty.outW.Write([]byte("bye\r\n"))
	require.NoError(err)
	require.NoError(tty.outW.Close())

	select {
	case res := <-resC:
		require.NoError(res.err)
		assert.Equal(7, res.code)
		assert.Equal("bye\r\n", stdout.String())
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for the session to end")
	}
}

func TestClientRunContextCancel(t *testing.T) {
	tty := newFakeTTY(0)
	me := sandboxmock.NewMockEngine(t)
	me.On("Attach", mock.Anything, "c1", mock.Anything).Once().Return(tty, nil)

	_, srv := newServer(t, terminal.BridgeConfig{Attacher: me})

	c, err := terminal.Dial(context.TODO(), terminal.ClientConfig{Addr: wsURL(srv, ""), SandboxID: "c1"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error, 1)
	go func() {
		_, err := c.Run(ctx, nil, &bytes.Buffer{})
		errC <- err
	}()
	cancel()

	select {
	case err := <-errC:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for cancellation")
	}

	select {
	case <-tty.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("tty was not closed")
	}
}

func TestClientDialErrors(t *testing.T) {
	tests := map[string]struct {
		cfg    func(addr string) terminal.ClientConfig
		mock   func(m *sandboxmock.MockEngine)
		expErr error
	}{
		"A missing sandbox should fail with not found.": {
			cfg: func(addr string) terminal.ClientConfig {
				return terminal.ClientConfig{Addr: addr, SandboxID: "c1"}
			},
			mock: func(m *sandboxmock.MockEngine) {
				m.On("Attach", mock.Anything, "c1", mock.Anything).Once().Return(nil, model.ErrNotFound)
			},
			expErr: model.ErrNotFound,
		},

		"An unavailable runtime should fail as unavailable.": {
			cfg: func(addr string) terminal.ClientConfig {
				return terminal.ClientConfig{Addr: addr, SandboxID: "c1"}
			},
			mock: func(m *sandboxmock.MockEngine) {
				m.On("Attach", mock.Anything, "c1", mock.Anything).Once().Return(nil, model.ErrRuntimeUnavailable)
			},
			expErr: model.ErrRuntimeUnavailable,
		},

		"An unsupported scheme should fail as not valid.": {
			cfg: func(addr string) terminal.ClientConfig {
				return terminal.ClientConfig{Addr: "ftp://localhost", SandboxID: "c1"}
			},
			mock:   func(m *sandboxmock.MockEngine) {},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			me := sandboxmock.NewMockEngine(t)
			test.mock(me)
			_, srv := newServer(t, terminal.BridgeConfig{Attacher: me})

			_, err := terminal.Dial(context.TODO(), test.cfg(srv.URL))
			assert.ErrorIs(t, err, test.expErr)
		})
	}
}

func TestClientDialInvalidConfig(t *testing.T) {
	_, err := terminal.Dial(context.TODO(), terminal.ClientConfig{SandboxID: "c1"})
	assert.Error(t, err)

	_, err = terminal.Dial(context.TODO(), terminal.ClientConfig{Addr: "ws://localhost"})
	assert.Error(t, err)
}
