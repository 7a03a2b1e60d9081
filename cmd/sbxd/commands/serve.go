package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slok/sbxd/internal/log"
	metricsprometheus "github.com/slok/sbxd/internal/metrics/prometheus"
	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/sandbox"
	"github.com/slok/sbxd/internal/terminal"
)

const serveShutdownTimeout = 10 * time.Second

type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listenAddr string
	token      string
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("serve", "Serve the sandbox terminals over WebSocket, with metrics and health check endpoints.")
	c.Cmd.Flag("listen", "HTTP listen address.").Default(":8080").StringVar(&c.listenAddr)
	c.Cmd.Flag("token", "Terminal access token, overrides the configuration one.").StringVar(&c.token)

	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.loadConfig(ctx)
	if err != nil {
		return err
	}
	token := cfg.Terminal.Token
	if c.token != "" {
		token = c.token
	}
	if token == "" {
		logger.Warningf("Terminal token not configured, terminals are open to any client reaching %s", c.listenAddr)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := metricsprometheus.NewRecorder(reg)

	rt, err := c.rootCmd.newRuntime(rec)
	if err != nil {
		return err
	}
	defer func() { _ = rt.close() }()

	bridge, err := terminal.NewBridge(terminal.BridgeConfig{
		Attacher:        rt.engine,
		Token:           token,
		Shell:           cfg.Terminal.Shell,
		MetricsRecorder: rec,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("could not create terminal bridge: %w", err)
	}

	mux := http.NewServeMux()
	bridge.Register(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("GET /healthz", healthHandler(rt.engine, logger))

	server := &http.Server{
		Addr:              c.listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g run.Group

	// HTTP server.
	{
		g.Add(
			func() error {
				logger.Infof("HTTP server listening on %s", c.listenAddr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			},
			func(_ error) {
				// Hijacked terminal connections are not tracked by the server.
				bridge.CloseAll()

				ctx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
				defer cancel()
				if err := server.Shutdown(ctx); err != nil {
					logger.Errorf("Could not shutdown HTTP server: %s", err)
				}
			},
		)
	}

	// Context cancellation (from parent signal handling).
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				<-ctx.Done()
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

func healthHandler(engine sandbox.Engine, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := engine.Ping(r.Context()); err != nil {
			logger.Warningf("Health check failed: %s", err)
			http.Error(w, err.Error(), model.HTTPStatus(err))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
}
