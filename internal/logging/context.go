package logging

import "context"

type ctxKey struct{}

// ToContext returns a child context carrying the given logger. Request-scoped
// middleware uses it to propagate a correlation-tagged logger to the layers
// below without threading the logger through every signature.
func ToContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext extracts the logger previously stored with ToContext. When the
// context carries none, the provided fallback is returned.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return fallback
}
