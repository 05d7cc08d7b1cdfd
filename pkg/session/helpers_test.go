package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newCookieManager(t *testing.T) *cookie.Manager {
	t.Helper()
	cm, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	return cm
}

// newManager builds a manager over a fresh memory store and a signed cookie transport.
func newManager(t *testing.T, opts ...session.Option) (*session.Manager, *cookie.Manager) {
	t.Helper()
	cm := newCookieManager(t)
	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	base := []session.Option{
		session.WithCookieManager(cm),
		session.WithStore(store),
	}
	m := session.New(append(base, opts...)...)
	t.Cleanup(func() { _ = m.Close() })
	return m, cm
}

func newRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil)
}

// followUp builds a request carrying the cookies rec received.
func followUp(rec *httptest.ResponseRecorder) *http.Request {
	req := newRequest()
	seen := map[string]bool{}
	cookies := responseCookies(rec)
	for i := len(cookies) - 1; i >= 0; i-- {
		c := cookies[i]
		if seen[c.Name] || c.MaxAge < 0 {
			seen[c.Name] = true
			continue
		}
		seen[c.Name] = true
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	return req
}

// lastCookie returns the last Set-Cookie for name, nil when there is none.
func lastCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range responseCookies(rec) {
		if c.Name == name {
			found = c
		}
	}
	return found
}

// requestWithID builds a request presenting id in a signed session cookie.
func requestWithID(t *testing.T, cm *cookie.Manager, name, id string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, cm.SetSigned(rec, name, id))
	return followUp(rec)
}

// responseCookies parses the Set-Cookie headers written so far. Unlike
// rec.Result it does not freeze the headers on first use.
func responseCookies(rec *httptest.ResponseRecorder) []*http.Cookie {
	return (&http.Response{Header: rec.Header()}).Cookies()
}
