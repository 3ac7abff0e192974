// Package logging provides the structured logger used across the application.
// Code depends on the small Logger interface, never on a concrete backend, so the same call
// sites can write coloured text to stdout, JSON, and Fluent Bit at the same time.
package logging

import (
	"log/slog"
	"strings"
)

// Fields carries structured key/value data attached to a log entry.
type Fields map[string]interface{}

// Logger is the contract for the logging system.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error records a failure, usually together with the error value.
	Error(msg string, err error, fields Fields)
	// WithFields returns a child logger that adds the given fields to every entry.
	WithFields(fields Fields) Logger
}

// ParseLevel maps a textual level to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Nop returns a logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, Fields)        {}
func (nopLogger) Info(string, Fields)         {}
func (nopLogger) Warn(string, Fields)         {}
func (nopLogger) Error(string, error, Fields) {}
func (n nopLogger) WithFields(Fields) Logger  { return n }
