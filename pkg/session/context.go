package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

type runtimeContextKey struct{}

// WithRuntime adds a session runtime to the context
func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeContextKey{}, rt)
}

// RuntimeFromContext retrieves a session runtime from the context
func RuntimeFromContext(ctx context.Context) (*Runtime, bool) {
	rt, ok := ctx.Value(runtimeContextKey{}).(*Runtime)
	return rt, ok && rt != nil
}

// MustRuntimeFromContext retrieves a session runtime from the context or panics
func MustRuntimeFromContext(ctx context.Context) *Runtime {
	rt, ok := RuntimeFromContext(ctx)
	if !ok {
		panic("session: runtime not found in context")
	}
	return rt
}

// LoggerExtractor adds the name and id of the session of the request to log records
// once the session has an id.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		rt, ok := RuntimeFromContext(ctx)
		if !ok || rt.ID() == "" {
			return slog.Attr{}, false
		}
		return logger.Group("session", logger.SessionName(rt.Name()), logger.SessionID(rt.ID())), true
	}
}
