package sketch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/sketch/atlas"
	"github.com/gogpu/sketch/batch"
	"github.com/gogpu/sketch/text"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
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

// SetLogger configures the logger for sketch and its batch, atlas and
// text sub-packages. By default nothing is logged. Pass nil to restore
// the silent default.
//
// Log levels used by sketch:
//   - [slog.LevelDebug]: flushes, pipeline creation, atlas growth
//   - [slog.LevelWarn]: latched GPU errors
//
// Example:
//
//	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	batch.SetLogger(l)
	atlas.SetLogger(l)
	text.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
