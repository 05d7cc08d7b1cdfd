package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestCookieTransport(t *testing.T) {
	t.Parallel()

	params := session.CookieParams{
		Lifetime: 30 * time.Minute,
		Path:     "/",
		Domain:   "example.com",
		Secure:   true,
		HTTPOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	for _, enc := range []cookie.Encoding{cookie.Plain, cookie.Signed, cookie.Encrypted} {
		t.Run(string(enc), func(t *testing.T) {
			t.Parallel()
			tr := session.NewCookieTransport(newCookieManager(t), enc)

			rec := httptest.NewRecorder()
			require.NoError(t, tr.WriteID(rec, "sid", "abc123", params))

			c := lastCookie(rec, "sid")
			require.NotNil(t, c)
			assert.Equal(t, "example.com", c.Domain)
			assert.True(t, c.Secure)
			assert.Equal(t, 1800, c.MaxAge)
			assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

			id, err := tr.ReadID(followUp(rec), "sid")
			require.NoError(t, err)
			assert.Equal(t, "abc123", id)

			_, err = tr.ReadID(followUp(rec), "other")
			assert.ErrorIs(t, err, session.ErrSessionNotFound)
		})
	}

	t.Run("clear", func(t *testing.T) {
		t.Parallel()
		tr := session.NewCookieTransport(newCookieManager(t), "")
		rec := httptest.NewRecorder()
		require.NoError(t, tr.ClearID(rec, "sid", params))

		c := lastCookie(rec, "sid")
		require.NotNil(t, c)
		assert.Less(t, c.MaxAge, 0)
		assert.Equal(t, "example.com", c.Domain)
	})

	t.Run("extra options win", func(t *testing.T) {
		t.Parallel()
		tr := session.NewCookieTransport(newCookieManager(t), cookie.Signed, cookie.WithPath("/forced"))
		rec := httptest.NewRecorder()
		require.NoError(t, tr.WriteID(rec, "sid", "abc", params))
		assert.Equal(t, "/forced", lastCookie(rec, "sid").Path)
	})
}

func TestHeaderTransport(t *testing.T) {
	t.Parallel()

	t.Run("round trip with prefix", func(t *testing.T) {
		t.Parallel()
		tr := session.NewHeaderTransport("Authorization", session.WithHeaderPrefix("Session "))

		rec := httptest.NewRecorder()
		require.NoError(t, tr.WriteID(rec, "sid", "abc123", session.CookieParams{Lifetime: time.Hour}))
		assert.Equal(t, "Session abc123", rec.Header().Get("Authorization"))
		assert.NotEmpty(t, rec.Header().Get("Authorization-Expires"))

		req := newRequest()
		req.Header.Set("Authorization", "Session abc123")
		id, err := tr.ReadID(req, "ignored")
		require.NoError(t, err)
		assert.Equal(t, "abc123", id)

		require.NoError(t, tr.ClearID(rec, "sid", session.CookieParams{}))
		assert.Empty(t, rec.Header().Get("Authorization"))
		assert.Empty(t, rec.Header().Get("Authorization-Expires"))
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		tr := session.NewHeaderTransport("X-Session-ID")
		_, err := tr.ReadID(newRequest(), "sid")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("no expiry without lifetime", func(t *testing.T) {
		t.Parallel()
		tr := session.NewHeaderTransport("X-Session-ID")
		rec := httptest.NewRecorder()
		require.NoError(t, tr.WriteID(rec, "sid", "abc", session.CookieParams{}))
		assert.Empty(t, rec.Header().Get("X-Session-ID-Expires"))
	})
}

func TestCompositeTransport(t *testing.T) {
	t.Parallel()

	cm := newCookieManager(t)
	cookies := session.NewCookieTransport(cm, cookie.Signed)
	header := session.NewHeaderTransport("X-Session-ID")
	tr := session.NewCompositeTransport(header, cookies)

	t.Run("reads first available", func(t *testing.T) {
		t.Parallel()
		req := requestWithID(t, cm, "sid", "from-cookie")
		id, err := tr.ReadID(req, "sid")
		require.NoError(t, err)
		assert.Equal(t, "from-cookie", id)

		req.Header.Set("X-Session-ID", "from-header")
		id, err = tr.ReadID(req, "sid")
		require.NoError(t, err)
		assert.Equal(t, "from-header", id)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Parallel()
		_, err := tr.ReadID(newRequest(), "sid")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("writes everywhere", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, tr.WriteID(rec, "sid", "abc", session.DefaultConfig().Cookie))
		assert.Equal(t, "abc", rec.Header().Get("X-Session-ID"))
		assert.NotNil(t, lastCookie(rec, "sid"))

		require.NoError(t, tr.ClearID(rec, "sid", session.DefaultConfig().Cookie))
		assert.Empty(t, rec.Header().Get("X-Session-ID"))
		assert.Less(t, lastCookie(rec, "sid").MaxAge, 0)
	})
}

func TestManager_HeaderTransport(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, session.WithTransport(session.NewHeaderTransport("X-Session-ID")))
	ctx := t.Context()

	rec := httptest.NewRecorder()
	h, err := m.NewSession(ctx, rec, newRequest())
	require.NoError(t, err)
	require.NoError(t, h.Set("a", 1))
	require.NoError(t, h.Close(ctx))
	id := rec.Header().Get("X-Session-ID")
	require.NotEmpty(t, id)

	req := newRequest()
	req.Header.Set("X-Session-ID", id)
	h2, err := m.NewSession(ctx, httptest.NewRecorder(), req)
	require.NoError(t, err)
	v, ok, err := h2.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
