package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

const (
	secret    = "0123456789abcdef0123456789abcdef"
	oldSecret = "fedcba9876543210fedcba9876543210"
)

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{secret}
	}
	m, err := cookie.New(secrets)
	require.NoError(t, err)
	return m
}

// replay copies the cookies set on rec into a new request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("no secret", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{"", ""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New([]string{"short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New([]string{secret}, cookie.WithDomain("example.com"))
		require.NoError(t, err)

		d := m.Defaults()
		assert.Equal(t, "/", d.Path)
		assert.Equal(t, "example.com", d.Domain)
		assert.True(t, d.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, d.SameSite)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, enc := range []cookie.Encoding{cookie.Plain, cookie.Signed, cookie.Encrypted} {
		t.Run(string(enc), func(t *testing.T) {
			t.Parallel()
			m := newManager(t)

			rec := httptest.NewRecorder()
			require.NoError(t, m.Write(rec, enc, "sid", "abc-123_XYZ"))

			raw := rec.Result().Cookies()[0].Value
			if enc == cookie.Plain {
				assert.Equal(t, "abc-123_XYZ", raw)
			} else {
				assert.NotEqual(t, "abc-123_XYZ", raw)
			}

			got, err := m.Read(replay(rec), enc, "sid")
			require.NoError(t, err)
			assert.Equal(t, "abc-123_XYZ", got)
		})
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "sid")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("tampered signature", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "sid", "value"))

		c := rec.Result().Cookies()[0]
		value, _, _ := strings.Cut(c.Value, "|")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: value + "|forged"})

		_, err := m.GetSigned(req, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("unsigned value", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "plain"})

		_, err := m.GetSigned(req, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("garbage ciphertext", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "YWJj"})

		_, err := m.GetEncrypted(req, "sid")
		assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		err := m.Write(httptest.NewRecorder(), cookie.Encoding("rot13"), "sid", "v")
		assert.ErrorIs(t, err, cookie.ErrUnknownEncoding)
		assert.False(t, cookie.Encoding("rot13").Valid())
		assert.True(t, cookie.Signed.Valid())
	})
}

func TestSecretRotation(t *testing.T) {
	t.Parallel()

	before := newManager(t, oldSecret)
	after := newManager(t, secret, oldSecret)
	unrelated := newManager(t, secret)

	signed := httptest.NewRecorder()
	require.NoError(t, before.SetSigned(signed, "sid", "id-1"))
	encrypted := httptest.NewRecorder()
	require.NoError(t, before.SetEncrypted(encrypted, "sid", "id-2"))

	got, err := after.GetSigned(replay(signed), "sid")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got)

	got, err = after.GetEncrypted(replay(encrypted), "sid")
	require.NoError(t, err)
	assert.Equal(t, "id-2", got)

	_, err = unrelated.GetSigned(replay(signed), "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	t.Run("lifetime", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		require.NoError(t, m.Set(rec, "sid", "v",
			cookie.WithLifetime(time.Hour),
			cookie.WithPath("/app"),
			cookie.WithSecure(true),
			cookie.WithSameSite(http.SameSiteStrictMode),
		))

		c := rec.Result().Cookies()[0]
		assert.Equal(t, 3600, c.MaxAge)
		assert.WithinDuration(t, time.Now().Add(time.Hour), c.Expires, 5*time.Second)
		assert.Equal(t, "/app", c.Path)
		assert.True(t, c.Secure)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})

	t.Run("zero lifetime is a browser session cookie", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		require.NoError(t, m.Set(rec, "sid", "v", cookie.WithMaxAge(60), cookie.WithLifetime(0)))

		c := rec.Result().Cookies()[0]
		assert.Zero(t, c.MaxAge)
		assert.True(t, c.Expires.IsZero())
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	m.Delete(rec, "sid", cookie.WithPath("/app"))

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "sid", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.Equal(t, "/app", c.Path)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("parses secrets", func(t *testing.T) {
		t.Parallel()
		cfg := cookie.DefaultConfig()
		cfg.Secrets = " " + secret + " , ," + oldSecret
		cfg.Domain = "example.com"
		cfg.HttpOnly = false

		m, err := cookie.NewFromConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, "example.com", m.Defaults().Domain)
		assert.False(t, m.Defaults().HttpOnly)
	})

	t.Run("requires secrets", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.NewFromConfig(cookie.DefaultConfig())
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}
