// Package requestid correlates log records of one HTTP request.
//
// Middleware attaches an id to every request: a client supplied X-Request-ID is
// reused when it is at most 128 characters of [A-Za-z0-9_-], otherwise a UUIDv4 is
// generated. The id is echoed in the response header and stored in the request
// context, where FromContext and LoggerExtractor pick it up:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	handler := requestid.Middleware(router)
package requestid
