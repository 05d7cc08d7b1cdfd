package session

import (
	"errors"
	"net/http"
)

// CompositeTransport tries multiple transports in order
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport creates a composite transport that tries multiple transports
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{
		transports: transports,
	}
}

// ReadID returns the id found by the first transport that has one
func (t *CompositeTransport) ReadID(r *http.Request, name string) (string, error) {
	for _, transport := range t.transports {
		id, err := transport.ReadID(r, name)
		if err == nil && id != "" {
			return id, nil
		}
	}
	return "", ErrSessionNotFound
}

// WriteID sends the session id via all configured transports
func (t *CompositeTransport) WriteID(w http.ResponseWriter, name, id string, params CookieParams) error {
	var errs []error
	for _, transport := range t.transports {
		errs = append(errs, transport.WriteID(w, name, id, params))
	}
	return errors.Join(errs...)
}

// ClearID clears the session id on all configured transports
func (t *CompositeTransport) ClearID(w http.ResponseWriter, name string, params CookieParams) error {
	var errs []error
	for _, transport := range t.transports {
		errs = append(errs, transport.ClearID(w, name, params))
	}
	return errors.Join(errs...)
}
