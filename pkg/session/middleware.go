package session

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Middleware installs a session Runtime into the request context. Handlers open
// handles with OpenFromContext. Whatever the handler does, a session still active
// when it returns is written and closed.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt := m.Runtime(w, r)

		defer func() {
			ctx := context.WithoutCancel(r.Context())
			if err := rt.WriteClose(ctx); err != nil {
				m.logger.ErrorContext(ctx, "session write on request end failed",
					logger.Component("session"),
					logger.Error(err),
				)
			}
		}()

		next.ServeHTTP(w, r.WithContext(WithRuntime(r.Context(), rt)))
	})
}

// StartSession is a middleware that starts the session before the handler runs.
// Requests whose session cannot be started get a 500 response.
func (m *Manager) StartSession(next http.Handler) http.Handler {
	return m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt := MustRuntimeFromContext(r.Context())
		if err := rt.Start(r.Context()); err != nil {
			m.logger.ErrorContext(r.Context(), "session start failed", logger.Error(err))
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
