package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/slok/sbxd/internal/log"
	"github.com/slok/sbxd/internal/model"
)

// UnknownExitCode is returned when the connection ends without an exit message.
const UnknownExitCode = -1

// ClientConfig is the configuration of a terminal client.
type ClientConfig struct {
	// Addr is the bridge base URL (e.g. ws://127.0.0.1:8080).
	Addr      string
	SandboxID string
	Token     string
	Dialer    *websocket.Dialer
	Logger    log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.Addr == "" {
		return fmt.Errorf("address is required")
	}
	if c.SandboxID == "" {
		return fmt.Errorf("sandbox id is required")
	}
	if c.Dialer == nil {
		c.Dialer = websocket.DefaultDialer
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "terminal.Client", "sandbox": c.SandboxID})
	return nil
}

// Client is a connected terminal session on a bridge.
type Client struct {
	conn   *websocket.Conn
	logger log.Logger

	writeMu sync.Mutex
}

// Dial connects to the terminal of a sandbox. Handshake rejections are mapped
// back to the model errors.
func Dial(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	u, err := terminalURL(cfg.Addr, cfg.SandboxID, cfg.Token)
	if err != nil {
		return nil, err
	}

	conn, resp, err := cfg.Dialer.DialContext(ctx, u, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("terminal handshake rejected with status %d: %w", resp.StatusCode, statusError(resp.StatusCode))
		}
		return nil, fmt.Errorf("could not connect to terminal: %w", err)
	}

	return &Client{conn: conn, logger: cfg.Logger}, nil
}

func terminalURL(addr, id, token string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", addr, model.ErrNotValid)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported address scheme %q: %w", u.Scheme, model.ErrNotValid)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/sandboxes/" + url.PathEscape(id) + "/terminal"
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return model.ErrNotFound
	case http.StatusBadRequest:
		return model.ErrNotValid
	case http.StatusServiceUnavailable:
		return model.ErrRuntimeUnavailable
	}
	return errors.New(http.StatusText(code))
}

// Resize sends the terminal size to the remote shell.
func (c *Client) Resize(cols, rows uint) error {
	return c.write(func() error {
		return c.conn.WriteJSON(ControlMessage{Type: MessageTypeResize, Cols: cols, Rows: rows})
	})
}

// Run pumps stdin to the shell and the shell output to stdout until the remote
// shell ends or ctx is cancelled. It returns the remote exit code.
func (c *Client) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) (int, error) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-done:
		}
	}()

	go c.pumpStdin(stdin)

	exitCode := UnknownExitCode
	for {
		typ, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return exitCode, nil
			}
			if ctx.Err() != nil {
				return exitCode, ctx.Err()
			}
			return exitCode, fmt.Errorf("terminal connection lost: %w", err)
		}

		switch typ {
		case websocket.BinaryMessage:
			if _, err := stdout.Write(data); err != nil {
				return exitCode, fmt.Errorf("could not write output: %w", err)
			}
		case websocket.TextMessage:
			var msg ControlMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				c.logger.Warningf("Invalid control message: %s", err)
				continue
			}
			if msg.Type == MessageTypeExit && msg.Code != nil {
				exitCode = *msg.Code
			}
		}
	}
}

func (c *Client) pumpStdin(stdin io.Reader) {
	if stdin == nil {
		return
	}

	buf := make([]byte, 4096)
	for {
		n, err := stdin.Read(buf)
		if n > 0 {
			data := append([]byte{}, buf[:n]...)
			if werr := c.write(func() error { return c.conn.WriteMessage(websocket.BinaryMessage, data) }); werr != nil {
				c.logger.Debugf("Could not send input: %s", werr)
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (c *Client) write(fn func() error) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return fn()
}

// Close closes the connection.
func (c *Client) Close() error {
	_ = c.write(func() error {
		return c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	})
	return c.conn.Close()
}
