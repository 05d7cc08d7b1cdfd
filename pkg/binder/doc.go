// Package binder fills request structs from HTTP requests for pkg/handler.
//
// Each binder is a func(r *http.Request, v any) error that reads one source:
//
//   - JSON decodes an application/json body (strict, size limited)
//   - Path reads `path:"name"` fields through a router extractor such as chi.URLParam
//   - Query reads `query:"name"` fields from the query string
//
// Scalar fields support string, signed and unsigned integers, floats and bools;
// pointers make a field optional. Failures wrap the sentinel errors of this
// package so callers can map them to HTTP statuses with errors.Is.
package binder
