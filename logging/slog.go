package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// SlogConfig configures the slog-backed logger.
type SlogConfig struct {
	// Writer is where logs go. Defaults to os.Stdout.
	Writer    io.Writer
	Level     slog.Leveler
	AddSource bool
	// JSON switches to slog's JSON handler; otherwise tint renders coloured text.
	JSON bool
}

// SlogAdapter implements Logger on top of log/slog.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new slog-backed logger.
func NewSlogAdapter(cfg SlogConfig) *SlogAdapter {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Level == nil {
		cfg.Level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{
			AddSource: cfg.AddSource,
			Level:     cfg.Level,
		})
	} else {
		handler = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}
	return &SlogAdapter{logger: slog.New(handler)}
}

func toAttrs(fields Fields) []any {
	attrs := make([]any, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (a *SlogAdapter) Debug(msg string, fields Fields) {
	a.logger.Debug(msg, toAttrs(fields)...)
}

func (a *SlogAdapter) Info(msg string, fields Fields) {
	a.logger.Info(msg, toAttrs(fields)...)
}

func (a *SlogAdapter) Warn(msg string, fields Fields) {
	a.logger.Warn(msg, toAttrs(fields)...)
}

func (a *SlogAdapter) Error(msg string, err error, fields Fields) {
	attrs := toAttrs(fields)
	if err != nil {
		attrs = append(attrs, tint.Err(err))
	}
	a.logger.Error(msg, attrs...)
}

func (a *SlogAdapter) WithFields(fields Fields) Logger {
	return &SlogAdapter{logger: a.logger.With(toAttrs(fields)...)}
}
