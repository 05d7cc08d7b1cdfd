package session

import "errors"

var (
	// ErrInactiveSession is returned by any data operation on a handle whose
	// session was never started, or was already closed or destroyed.
	ErrInactiveSession = errors.New("session.inactive")

	// ErrInvalidKey indicates an empty key or a negative index
	ErrInvalidKey = errors.New("session.invalid_key")

	// ErrMalformedInitData indicates Initialize was given something that is not a mapping
	ErrMalformedInitData = errors.New("session.malformed_init_data")

	// ErrSessionStarted is returned when name, id or cookie params are changed after start
	ErrSessionStarted = errors.New("session.already_started")

	// ErrSessionsDisabled is returned by Start when the manager has sessions disabled
	ErrSessionsDisabled = errors.New("session.disabled")

	// ErrInvalidID indicates a session id with unsupported characters or length
	ErrInvalidID = errors.New("session.invalid_id")

	// ErrSessionNotFound indicates no session was found
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrIDGeneration indicates session id generation failed
	ErrIDGeneration = errors.New("session.id_generation_failed")

	// ErrInvalidName indicates an empty session name or one that cannot be a cookie name
	ErrInvalidName = errors.New("session.invalid_name")

	// ErrNoRuntime indicates the context carries no session runtime
	ErrNoRuntime = errors.New("session.no_runtime")

	// ErrNoCookieManager indicates a raw cookie was requested without a cookie manager
	ErrNoCookieManager = errors.New("session.no_cookie_manager")
)
