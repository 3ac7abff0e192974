package logging

import "fmt"

// MultiLogger fans every entry out to several loggers.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers; at least one is required.
func NewMultiLogger(loggers ...Logger) (*MultiLogger, error) {
	if len(loggers) == 0 {
		return nil, fmt.Errorf("multilogger: at least one logger is required")
	}
	return &MultiLogger{loggers: loggers}, nil
}

func (m *MultiLogger) Debug(msg string, fields Fields) {
	for _, l := range m.loggers {
		l.Debug(msg, fields)
	}
}

func (m *MultiLogger) Info(msg string, fields Fields) {
	for _, l := range m.loggers {
		l.Info(msg, fields)
	}
}

func (m *MultiLogger) Warn(msg string, fields Fields) {
	for _, l := range m.loggers {
		l.Warn(msg, fields)
	}
}

func (m *MultiLogger) Error(msg string, err error, fields Fields) {
	for _, l := range m.loggers {
		l.Error(msg, err, fields)
	}
}

func (m *MultiLogger) WithFields(fields Fields) Logger {
	enriched := make([]Logger, 0, len(m.loggers))
	for _, l := range m.loggers {
		enriched = append(enriched, l.WithFields(fields))
	}
	return &MultiLogger{loggers: enriched}
}
