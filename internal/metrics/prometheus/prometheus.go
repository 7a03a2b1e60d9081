package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/slok/sbxd/internal/metrics"
)

const prefix = "sbxd"

// Recorder is the Prometheus implementation of metrics.Recorder.
type Recorder struct {
	runtimeOpDuration *prometheus.HistogramVec
	execDuration      *prometheus.HistogramVec
	terminalSessions  prometheus.Gauge
}

// NewRecorder returns a new Prometheus recorder registered on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runtimeOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Subsystem: "runtime",
			Name:      "operation_duration_seconds",
			Help:      "The duration of the operations against the container runtime.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "success"}),

		execDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Subsystem: "sandbox",
			Name:      "command_duration_seconds",
			Help:      "The duration of the commands executed inside sandboxes.",
			Buckets:   []float64{.05, .1, .5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"exit_code"}),

		terminalSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: prefix,
			Subsystem: "terminal",
			Name:      "sessions",
			Help:      "The number of open interactive terminal sessions.",
		}),
	}

	reg.MustRegister(
		r.runtimeOpDuration,
		r.execDuration,
		r.terminalSessions,
	)

	return r
}

func (r Recorder) ObserveRuntimeOperation(_ context.Context, op string, success bool, t time.Duration) {
	r.runtimeOpDuration.WithLabelValues(op, strconv.FormatBool(success)).Observe(t.Seconds())
}

func (r Recorder) ObserveCommandExecution(_ context.Context, exitCode int, t time.Duration) {
	r.execDuration.WithLabelValues(strconv.Itoa(exitCode)).Observe(t.Seconds())
}

func (r Recorder) AddTerminalSessions(_ context.Context, delta int) {
	r.terminalSessions.Add(float64(delta))
}

var _ metrics.Recorder = &Recorder{}
