// Package logger provides the narrow logging collaborator used across
// commander: error, info and debug records with key/value metadata.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

const source = "commander"

// Logger is a fire-and-forget structured logger
type Logger interface {
	Error(msg string, err error, keyValues ...any)
	Info(msg string, keyValues ...any)
	Debug(msg string, keyValues ...any)
}

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Error(msg string, err error, keyValues ...any) {
	if err != nil {
		keyValues = append(keyValues, "error", err.Error())
	}
	l.logger.Error(msg, keyValues...)
}

func (l *slogLogger) Info(msg string, keyValues ...any) {
	l.logger.Info(msg, keyValues...)
}

func (l *slogLogger) Debug(msg string, keyValues ...any) {
	l.logger.Debug(msg, keyValues...)
}

// New returns a structured logger writing to stderr. format can be "json" or "text".
func New(level, format string) Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter returns a structured logger writing to w
func NewWithWriter(w io.Writer, level, format string) Logger {
	options := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	return FromSlog(slog.New(handler))
}

// FromSlog adapts an existing slog logger
func FromSlog(l *slog.Logger) Logger {
	return &slogLogger{logger: l.With("source", source)}
}

// Nop returns a logger discarding every record
func Nop() Logger {
	return &slogLogger{logger: slog.New(discard{})}
}

type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
