package logging

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentConfig holds the Fluent Bit connection settings.
type FluentConfig struct {
	Host      string
	Port      int
	TagPrefix string
}

// NewFluentClient creates a Fluent Bit client. There is no ping: connection errors surface
// on the first Post.
func NewFluentClient(cfg FluentConfig) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluent tag prefix is required")
	}
	client, err := fluent.New(fluent.Config{
		FluentHost:   cfg.Host,
		FluentPort:   cfg.Port,
		TagPrefix:    cfg.TagPrefix,
		Async:        true,
		Timeout:      3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent client: %w", err)
	}
	return client, nil
}

// poster is the subset of *fluent.Fluent the adapter needs.
type poster interface {
	Post(tag string, message interface{}) error
}

// FluentAdapter implements Logger by posting records to Fluent Bit.
type FluentAdapter struct {
	client   poster
	fields   Fields
	minLevel slog.Level
}

// NewFluentAdapter creates a new Fluent Bit logger.
func NewFluentAdapter(client *fluent.Fluent, minLevel slog.Leveler) (*FluentAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("fluent client cannot be nil")
	}
	return newFluentAdapter(client, minLevel), nil
}

func newFluentAdapter(client poster, minLevel slog.Leveler) *FluentAdapter {
	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}
	return &FluentAdapter{client: client, fields: Fields{}, minLevel: level}
}

func (a *FluentAdapter) merge(fields Fields) Fields {
	merged := make(Fields, len(a.fields)+len(fields)+3)
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

// post sends the record; the tag (level) is used by Fluent Bit for routing.
// Errors are dropped so that logging never takes the request down.
func (a *FluentAdapter) post(level slog.Level, msg string, data Fields) {
	if level < a.minLevel {
		return
	}
	tag := map[slog.Level]string{
		slog.LevelDebug: "debug",
		slog.LevelInfo:  "info",
		slog.LevelWarn:  "warn",
		slog.LevelError: "error",
	}[level]
	data["level"] = tag
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	_ = a.client.Post(tag, data)
}

func (a *FluentAdapter) Debug(msg string, fields Fields) {
	a.post(slog.LevelDebug, msg, a.merge(fields))
}

func (a *FluentAdapter) Info(msg string, fields Fields) {
	a.post(slog.LevelInfo, msg, a.merge(fields))
}

func (a *FluentAdapter) Warn(msg string, fields Fields) {
	a.post(slog.LevelWarn, msg, a.merge(fields))
}

func (a *FluentAdapter) Error(msg string, err error, fields Fields) {
	data := a.merge(fields)
	if err != nil {
		data["error"] = err.Error()
	}
	a.post(slog.LevelError, msg, data)
}

func (a *FluentAdapter) WithFields(fields Fields) Logger {
	return &FluentAdapter{client: a.client, fields: a.merge(fields), minLevel: a.minLevel}
}
