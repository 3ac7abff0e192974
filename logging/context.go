package logging

import "context"

// loggerKey is unexported so no other package can collide with it.
type loggerKey struct{}

// WithContext stores the logger in the context.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the request-scoped logger, or a no-op logger when none was attached,
// so callers never have to nil-check.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return Nop()
}
