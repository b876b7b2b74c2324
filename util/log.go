package util

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger replaces the trace logger. Nothing is logged by default; pass nil
// to silence it again.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

func Logger() *slog.Logger {
	return loggerPtr.Load()
}

func Trace(msg string, args ...any) {
	loggerPtr.Load().Debug(msg, args...)
}

// Diag writes one console diagnostic line. Write errors are ignored, the same
// way printf results are.
func Diag(w io.Writer, format string, v ...interface{}) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format+"\n", v...)
}
