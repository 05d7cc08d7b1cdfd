package binder

import "net/http"

// Query creates a binder for query string parameters.
//
// Fields use `query:"name"` tags; `query:"-"` skips a field and untagged fields
// bind to their lowercased name. Slices accept repeated and comma separated values.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindFields(v, "query", false, func(name string) []string { return q[name] }, ErrFailedToParseQuery)
	}
}
