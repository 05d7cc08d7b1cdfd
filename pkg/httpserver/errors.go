package httpserver

import "errors"

var (
	// ErrStart wraps listen and serve failures returned by Run
	ErrStart = errors.New("httpserver.start_failed")

	// ErrAlreadyRunning is joined with ErrStart when Run is called twice
	ErrAlreadyRunning = errors.New("httpserver.already_running")

	// ErrShutdown wraps a graceful shutdown that did not finish in time
	ErrShutdown = errors.New("httpserver.shutdown_failed")
)
