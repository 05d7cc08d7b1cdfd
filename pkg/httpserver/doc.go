// Package httpserver runs the sessiond HTTP API.
//
// Server binds the listener configured by Config (HTTP_* environment variables),
// serves until the Run context ends or SIGINT/SIGTERM arrives, then drains
// in-flight requests within Config.ShutdownTimeout:
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// AccessLog writes one record per request. Mounted below the session middleware,
// the logger's context extractors add the request id and the session name and id.
//
// HealthCheckHandler answers "ALIVE" without checks and "READY" or 503
// "NOT_READY" when named Check values are supplied, such as the redis ping of the
// session store.
//
// Run wraps bind and serve errors with ErrStart, Shutdown wraps drain timeouts with
// ErrShutdown; inspect them with errors.Is.
package httpserver
