package svgmesh

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler discarding all log records.
// Enabled returns false so the callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by svgmesh and its sub-packages.
// By default nothing is logged. Passing nil restores the silent logger.
//
// Log levels used:
//   - [slog.LevelDebug]: tree and path summaries while building assets
//   - [slog.LevelWarn]: unsupported SVG elements, in WarnErrorMode
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call it to share
// the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
