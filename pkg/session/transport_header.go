package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport implements Transport using HTTP headers.
// The header name is fixed; the session name is ignored.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// NewHeaderTransport creates a new header-based transport
func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{
		headerName: headerName,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// HeaderOption is a functional option for HeaderTransport
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets a prefix for the header value, e.g. "Bearer "
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// ReadID extracts the session id from the request header
func (t *HeaderTransport) ReadID(r *http.Request, _ string) (string, error) {
	value := r.Header.Get(t.headerName)
	if t.prefix != "" {
		value = strings.TrimPrefix(value, t.prefix)
	}
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

// WriteID sends the session id in the response header
func (t *HeaderTransport) WriteID(w http.ResponseWriter, _ string, id string, params CookieParams) error {
	w.Header().Set(t.headerName, t.prefix+id)

	if params.Lifetime > 0 {
		w.Header().Set(t.headerName+"-Expires", time.Now().Add(params.Lifetime).UTC().Format(time.RFC3339))
	}

	return nil
}

// ClearID removes the session header from the response
func (t *HeaderTransport) ClearID(w http.ResponseWriter, _ string, _ CookieParams) error {
	w.Header().Del(t.headerName)
	w.Header().Del(t.headerName + "-Expires")
	return nil
}
