package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// ErrorMapper translates a domain error into an HTTPError. ok is false when the
// mapper does not know err.
type ErrorMapper func(err error) (HTTPError, bool)

// NewErrorHandler creates an error handler that maps err with mappers, logs it and
// renders a JSON error envelope. Client errors log at warn level, the rest at error.
func NewErrorHandler(log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		for _, m := range mappers {
			if httpErr, ok := m(err); ok {
				err = httpErr.Wrap(err)
				break
			}
		}

		var httpErr HTTPError
		status := http.StatusInternalServerError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}

		level := slog.LevelError
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}
