// Package handler provides type-safe HTTP handlers returning renderable responses.
//
// A HandlerFunc receives a Context and a request struct filled by binders (see
// pkg/binder) and returns a Response. Wrap turns it into an http.HandlerFunc:
//
//	type getValueRequest struct {
//		Key string `path:"key"`
//	}
//
//	func getValue(ctx handler.Context, req getValueRequest) handler.Response {
//		v, ok, err := lookup(ctx, req.Key)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		if !ok {
//			return handler.JSONError(handler.ErrNotFound)
//		}
//		return handler.JSON(v)
//	}
//
//	r.Get("/session/values/{key}", handler.Wrap(getValue,
//		handler.WithBinders[handler.Context, getValueRequest](binder.Path(chi.URLParam)),
//	))
//
// JSON responses use the JSONResponse envelope with data, meta and error members.
// Errors carrying an HTTPError set the status code and error code; any other
// error renders as 500 without exposing its message. NewErrorHandler adds
// ErrorMapper hooks that translate domain errors into HTTPError values and logs
// every failure through slog.
package handler
