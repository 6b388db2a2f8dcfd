// Package log builds the process slog.Logger.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a file, everything is written to both stderr and the file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below Debug and is used for per-event tracing.
const LevelTrace slog.Level = -8

func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter passes records to h only when pass accepts their level.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	if !f.pass(level) {
		return false
	}
	return f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// NewHandler splits output by level: below error to out, error and above
// to errOut.
func NewHandler(out, errOut io.Writer, level slog.Level) slog.Handler {
	return MultiHandler{hs: []slog.Handler{
		LevelFilter{
			pass: func(l slog.Level) bool { return l < slog.LevelError },
			h:    slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}),
		},
		LevelFilter{
			pass: func(l slog.Level) bool { return l >= slog.LevelError },
			h:    slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelError}),
		},
	}}
}

// SetupLogger builds a logger for logLevel, optionally also writing to
// logFile. The returned closers must be closed on exit.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	if logFile == "" {
		return slog.New(NewHandler(os.Stdout, os.Stderr, level)), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}),
	}
	return slog.New(MultiHandler{hs: handlers}), []io.Closer{f}, nil
}
