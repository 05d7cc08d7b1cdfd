// Package logger builds *slog.Logger instances for sessiond and keeps attribute
// names consistent across packages.
//
// New takes functional options: WithEnvironment picks a level/format preset per
// environment (development logs text at debug, staging and production log JSON at
// info), WithLevel and WithFormat override it, WithAttr adds static attributes.
// NewFromConfig does the same from APP_ENV, APP_NAME, LOG_LEVEL and LOG_FORMAT.
//
// Records pass through LogHandlerDecorator, which runs the registered
// ContextExtractor functions against the record context. Packages expose their own
// extractors, so a log call made with a request context carries the request id and
// the session name and id without the caller adding them:
//
//	log := logger.NewFromConfig(cfg,
//		logger.WithContextExtractors(requestid.LoggerExtractor(), session.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "cart updated", logger.Duration(time.Since(start)))
//
// The attribute helpers in attr.go (SessionID, SessionName, Store, Error, ...) return
// empty attributes for empty input, so Error(err) can be passed unconditionally.
package logger
