// Package log has the logger accepted by the sbxd SDK.
//
// Logging is disabled by default ([Noop]). Applications already on logrus can
// pass their entry with [NewLogrus], any other logger can be plugged by
// implementing [Logger]:
//
//	type slogLogger struct{ l *slog.Logger }
//
//	func (s slogLogger) Infof(format string, args ...any) { s.l.Info(fmt.Sprintf(format, args...)) }
//	func (s slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
//	// ...and the rest of the Logger methods.
package log

import (
	"github.com/sirupsen/logrus"

	"github.com/slok/sbxd/internal/log"
	loglogrus "github.com/slok/sbxd/internal/log/logrus"
)

type (
	// Logger is the logger used by the SDK services.
	Logger = log.Logger
	// Kv are structured key-value pairs added with Logger.WithValues.
	Kv = log.Kv
)

// Noop discards everything.
var Noop = log.Noop

// NewLogrus returns a Logger that writes to a logrus entry.
func NewLogrus(e *logrus.Entry) Logger {
	return loglogrus.NewLogrus(e)
}
