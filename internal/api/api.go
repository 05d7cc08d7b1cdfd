package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/sessionkit/pkg/binder"
	"github.com/dmitrymomot/sessionkit/pkg/handler"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// healthTimeout bounds every readiness probe
const healthTimeout = 2 * time.Second

// Handlers exposes one session per client over JSON routes.
type Handlers struct {
	sessions *session.Manager
	log      *slog.Logger
	onError  handler.ErrorHandler[handler.Context]
}

// New creates the session API handlers
func New(sessions *session.Manager, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		sessions: sessions,
		log:      log,
		onError:  handler.NewErrorHandler(log, mapError),
	}
}

// Router mounts the session routes and the health probe.
func (h *Handlers) Router(checks ...httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(h.log, healthTimeout, checks...))

	r.Route("/session", func(r chi.Router) {
		r.Use(h.sessions.Middleware, httpserver.AccessLog(h.log))

		r.Get("/", wrap(h, h.show, binder.Query()))
		r.Put("/", wrap(h, h.initialize, binder.Query(), binder.JSON()))

		r.Delete("/values", wrap(h, h.clear, binder.Query()))
		r.Get("/values/{key}", wrap(h, h.getValue, binder.Query(), binder.Path(chi.URLParam)))
		r.Put("/values/{key}", wrap(h, h.setValue, binder.Query(), binder.Path(chi.URLParam), binder.JSON()))
		r.Delete("/values/{key}", wrap(h, h.removeValue, binder.Query(), binder.Path(chi.URLParam)))

		r.Post("/push", wrap(h, h.push, binder.Query(), binder.JSON()))
		r.Post("/pop", wrap(h, h.pop, binder.Query()))
		r.Post("/unshift", wrap(h, h.unshift, binder.Query(), binder.JSON()))
		r.Post("/shift", wrap(h, h.shift, binder.Query()))

		r.Post("/reset", wrap(h, h.reset, binder.Query()))
		r.Post("/regenerate", wrap(h, h.regenerate, binder.Query()))
		r.Post("/destroy", wrap(h, h.destroy, binder.Query()))
	})

	return r
}

func wrap[R any](h *Handlers, fn handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](h.onError),
	)
}
