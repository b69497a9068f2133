// Package logging is a thin seam over slog so usecases depend on a minimal
// interface instead of a concrete logger. A nil Logger field anywhere in the
// app layer means "log nothing".
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the minimal structured logging surface the engine uses. Key/value
// pairs follow slog conventions.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogAdapter struct {
	l *slog.Logger
}

func (s slogAdapter) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s slogAdapter) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s slogAdapter) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s slogAdapter) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// NewSlog wraps an existing *slog.Logger.
func NewSlog(l *slog.Logger) Logger {
	return slogAdapter{l: l}
}

// New builds a JSON logger at the given level writing to w.
func New(w io.Writer, level slog.Level) Logger {
	if w == nil {
		w = os.Stdout
	}
	return slogAdapter{l: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NoOp discards everything. Tests and optional dependencies use it.
type NoOp struct{}

func (NoOp) Debug(string, ...any) {}
func (NoOp) Info(string, ...any)  {}
func (NoOp) Warn(string, ...any)  {}
func (NoOp) Error(string, ...any) {}

// OrNoOp returns l, or a NoOp when l is nil, so call sites never nil-check.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOp{}
	}
	return l
}
