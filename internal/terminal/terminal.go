package terminal

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/metrics"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox"
)

// Route is the HTTP route the bridge is served on.
const Route = "GET /sandboxes/{id}/terminal"

// DefaultShell is the command attached when none is configured.
var DefaultShell = []string{"/bin/sh"}

// Control message types sent as text frames.
const (
	MessageTypeResize = "resize"
	MessageTypeExit   = "exit"
)

// ControlMessage is the JSON message carried by text frames. Clients send
// resizes, the bridge sends the exit code when the shell ends.
type ControlMessage struct {
	Type string `json:"type"`
	Cols uint   `json:"cols,omitempty"`
	Rows uint   `json:"rows,omitempty"`
	Code *int   `json:"code,omitempty"`
}

// Attacher starts interactive TTY sessions inside sandboxes.
type Attacher interface {
	Attach(ctx context.Context, id string, command []string) (sandbox.TTYSession, error)
}

// BridgeConfig is the configuration of the terminal bridge.
type BridgeConfig struct {
	Attacher Attacher
	// Token is required on the `token` query parameter when set.
	Token string
	// Shell is the command attached to each connection.
	Shell           []string
	MetricsRecorder metrics.Recorder
	Logger          log.Logger
}

func (c *BridgeConfig) defaults() error {
	if c.Attacher == nil {
		return fmt.Errorf("attacher is required")
	}
	if len(c.Shell) == 0 {
		c.Shell = DefaultShell
	}
	if c.MetricsRecorder == nil {
		c.MetricsRecorder = metrics.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "terminal.Bridge"})
	return nil
}

// Bridge wires WebSocket connections to interactive shells running inside
// sandboxes. Binary frames carry the terminal bytes in both directions.
type Bridge struct {
	attacher Attacher
	token    string
	shell    []string
	metrics  metrics.Recorder
	logger   log.Logger
	upgrader websocket.Upgrader

	mu sync.Mutex
	// sandbox ID -> session ID -> session.
	sessions map[string]map[string]*session
}

// NewBridge returns a new terminal bridge.
func NewBridge(cfg BridgeConfig) (*Bridge, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Bridge{
		attacher: cfg.Attacher,
		token:    cfg.Token,
		shell:    cfg.Shell,
		metrics:  cfg.MetricsRecorder,
		logger:   cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Auth is done with the token, browsers from any origin are allowed.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: map[string]map[string]*session{},
	}, nil
}

// Register registers the bridge route on the mux.
func (b *Bridge) Register(mux *http.ServeMux) {
	mux.Handle(Route, b)
}

// ServeHTTP handles a terminal connection, it blocks until the session ends.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sandboxID := r.PathValue("id")
	if sandboxID == "" {
		http.Error(w, "sandbox id is required", http.StatusBadRequest)
		return
	}

	if b.token != "" && subtle.ConstantTimeCompare([]byte(r.URL.Query().Get("token")), []byte(b.token)) != 1 {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Attach before upgrading so runtime errors are returned as HTTP statuses.
	tty, err := b.attacher.Attach(ctx, sandboxID, b.shell)
	if err != nil {
		b.logger.Warningf("Could not attach to sandbox %s: %s", sandboxID, err)
		http.Error(w, err.Error(), model.HTTPStatus(err))
		return
	}

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		_ = tty.Close()
		b.logger.Warningf("Could not upgrade connection: %s", err)
		return
	}

	s := &session{
		id:        ulid.Make().String(),
		sandboxID: sandboxID,
		tty:       tty,
		conn:      conn,
	}
	logger := b.logger.WithValues(log.Kv{"sandbox-id": sandboxID, "session-id": s.id})

	b.add(s)
	b.metrics.AddTerminalSessions(ctx, 1)
	logger.Infof("Terminal session opened")
	defer func() {
		s.close()
		b.remove(s)
		b.metrics.AddTerminalSessions(ctx, -1)
		logger.Infof("Terminal session closed")
	}()

	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		defer s.close()
		b.pumpInput(ctx, s, logger)
	}()

	// When the shell ends give the client some time to answer the close frame.
	if b.pumpOutput(ctx, s, logger) {
		select {
		case <-inputDone:
		case <-time.After(closeTimeout):
		}
	}
	s.close()
	<-inputDone
}

const closeTimeout = 2 * time.Second

// pumpOutput sends the shell output to the client until the shell ends. It
// returns true when the shell ended and the close handshake was started.
func (b *Bridge) pumpOutput(ctx context.Context, s *session, logger log.Logger) bool {
	buf := make([]byte, 32*1024)
	for {
		n, err := s.tty.Read(buf)
		if n > 0 {
			if werr := s.conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				logger.Debugf("Could not write to client: %s", werr)
				return false
			}
		}
		if err == nil {
			continue
		}

		if !errors.Is(err, io.EOF) {
			logger.Debugf("Terminal output ended: %s", err)
			return false
		}

		// The shell has ended, report the exit code and close gracefully.
		msg := ControlMessage{Type: MessageTypeExit}
		if code, err := s.tty.ExitCode(ctx); err == nil {
			msg.Code = &code
		} else {
			logger.Warningf("Could not get shell exit code: %s", err)
		}
		if err := s.conn.WriteJSON(msg); err != nil {
			logger.Debugf("Could not send exit message: %s", err)
			return false
		}
		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shell exited")
		return s.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second)) == nil
	}
}

// pumpInput forwards the client keystrokes to the shell and applies control messages.
func (b *Bridge) pumpInput(ctx context.Context, s *session, logger log.Logger) {
	for {
		typ, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("Terminal input ended: %s", err)
			}
			return
		}

		switch typ {
		case websocket.BinaryMessage:
			if _, err := s.tty.Write(data); err != nil {
				logger.Debugf("Could not write to shell: %s", err)
				return
			}
		case websocket.TextMessage:
			var msg ControlMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				logger.Warningf("Ignoring invalid control message: %s", err)
				continue
			}
			if msg.Type != MessageTypeResize {
				logger.Warningf("Ignoring unknown control message %q", msg.Type)
				continue
			}
			if msg.Cols == 0 || msg.Rows == 0 {
				continue
			}
			if err := s.tty.Resize(ctx, msg.Cols, msg.Rows); err != nil {
				logger.Warningf("Could not resize terminal: %s", err)
			}
		}
	}
}

func (b *Bridge) add(s *session) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sessions[s.sandboxID] == nil {
		b.sessions[s.sandboxID] = map[string]*session{}
	}
	b.sessions[s.sandboxID][s.id] = s
}

func (b *Bridge) remove(s *session) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.sessions[s.sandboxID], s.id)
	if len(b.sessions[s.sandboxID]) == 0 {
		delete(b.sessions, s.sandboxID)
	}
}

// Sessions returns the IDs of the open sessions of a sandbox.
func (b *Bridge) Sessions(sandboxID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make([]string, 0, len(b.sessions[sandboxID]))
	for id := range b.sessions[sandboxID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CloseAll closes every open session.
func (b *Bridge) CloseAll() {
	b.mu.Lock()
	all := []*session{}
	for _, ss := range b.sessions {
		for _, s := range ss {
			all = append(all, s)
		}
	}
	b.mu.Unlock()

	for _, s := range all {
		closeMsg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = s.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
		s.close()
	}
}

type session struct {
	id        string
	sandboxID string
	tty       sandbox.TTYSession
	conn      *websocket.Conn
	once      sync.Once
}

func (s *session) close() {
	s.once.Do(func() {
		_ = s.tty.Close()
		_ = s.conn.Close()
	})
}
