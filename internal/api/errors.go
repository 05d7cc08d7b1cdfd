package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/binder"
	"github.com/dmitrymomot/sessionkit/pkg/handler"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

var (
	errSessionInactive  = handler.NewHTTPError(http.StatusConflict, "session_inactive")
	errSessionStarted   = handler.NewHTTPError(http.StatusConflict, "session_started")
	errSessionsDisabled = handler.NewHTTPError(http.StatusServiceUnavailable, "sessions_disabled")
	errInvalidKey       = handler.NewHTTPError(http.StatusBadRequest, "invalid_key")
	errInvalidName      = handler.NewHTTPError(http.StatusBadRequest, "invalid_session_name")
	errInvalidID        = handler.NewHTTPError(http.StatusBadRequest, "invalid_session_id")
	errMalformedInit    = handler.NewHTTPError(http.StatusUnprocessableEntity, "malformed_init_data")
	errValueNotFound    = handler.NewHTTPError(http.StatusNotFound, "value_not_found")
)

var errorTable = []struct {
	target error
	status handler.HTTPError
}{
	{session.ErrInactiveSession, errSessionInactive},
	{session.ErrSessionStarted, errSessionStarted},
	{session.ErrSessionsDisabled, errSessionsDisabled},
	{session.ErrInvalidKey, errInvalidKey},
	{session.ErrInvalidName, errInvalidName},
	{session.ErrInvalidID, errInvalidID},
	{session.ErrMalformedInitData, errMalformedInit},
	{binder.ErrMissingContentType, handler.ErrUnsupportedMediaType},
	{binder.ErrUnsupportedMediaType, handler.ErrUnsupportedMediaType},
	{binder.ErrBodyTooLarge, handler.ErrRequestTooLarge},
	{binder.ErrFailedToParseJSON, handler.ErrBadRequest},
	{binder.ErrFailedToParseQuery, handler.ErrBadRequest},
	{binder.ErrFailedToParsePath, handler.ErrBadRequest},
}

// mapError translates session and binding errors into HTTP errors
func mapError(err error) (handler.HTTPError, bool) {
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return e.status, true
		}
	}
	return handler.HTTPError{}, false
}
