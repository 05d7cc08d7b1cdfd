package session

import (
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// CookieTransport implements Transport using cookies named after the session
type CookieTransport struct {
	cookieMgr *cookie.Manager
	encoding  cookie.Encoding
	options   []cookie.Option
}

// NewCookieTransport creates a new cookie-based transport.
// opts are applied after the session cookie params.
func NewCookieTransport(cookieMgr *cookie.Manager, encoding cookie.Encoding, opts ...cookie.Option) *CookieTransport {
	if encoding == "" {
		encoding = cookie.Signed
	}
	return &CookieTransport{
		cookieMgr: cookieMgr,
		encoding:  encoding,
		options:   opts,
	}
}

// ReadID extracts the session id from the cookie
func (t *CookieTransport) ReadID(r *http.Request, name string) (string, error) {
	id, err := t.cookieMgr.Read(r, t.encoding, name)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return id, nil
}

// WriteID stores the session id in a cookie
func (t *CookieTransport) WriteID(w http.ResponseWriter, name, id string, params CookieParams) error {
	return t.cookieMgr.Write(w, t.encoding, name, id, t.cookieOptions(params)...)
}

// ClearID expires the session cookie
func (t *CookieTransport) ClearID(w http.ResponseWriter, name string, params CookieParams) error {
	t.cookieMgr.Delete(w, name, t.cookieOptions(params)...)
	return nil
}

func (t *CookieTransport) cookieOptions(p CookieParams) []cookie.Option {
	opts := []cookie.Option{
		cookie.WithLifetime(p.Lifetime),
		cookie.WithPath(p.Path),
		cookie.WithDomain(p.Domain),
		cookie.WithSecure(p.Secure),
		cookie.WithHTTPOnly(p.HTTPOnly),
		cookie.WithSameSite(p.SameSite),
	}
	return append(opts, t.options...)
}
