package session_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestNew_RequiresTransport(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		session.New()
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	cfg.Name = "app"
	cfg.CookieEncoding = cookie.Encrypted
	cfg.CleanupInterval = 0
	cfg.Cookie.Path = "/api"

	cm := newCookieManager(t)
	m := session.NewFromConfig(cfg, session.WithCookieManager(cm))
	t.Cleanup(func() { _ = m.Close() })

	assert.Equal(t, cfg, m.Config())
	_, ok := m.Store().(*session.MemoryStore)
	assert.True(t, ok)

	rec := httptest.NewRecorder()
	h, err := m.NewSession(context.Background(), rec, newRequest())
	require.NoError(t, err)
	assert.Equal(t, "app", h.Name())

	id, err := h.ID()
	require.NoError(t, err)
	c := lastCookie(rec, "app")
	require.NotNil(t, c)
	assert.Equal(t, "/api", c.Path)
	assert.NotContains(t, c.Value, id)

	got, err := cm.GetEncrypted(followUp(rec), "app")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestManager_SessionLifecycleAcrossRequests(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, _ := newManager(t, session.WithMaxLifetime(time.Minute))

	// First request: log in
	rec := httptest.NewRecorder()
	h, err := m.NewSession(ctx, rec, newRequest())
	require.NoError(t, err)
	require.NoError(t, h.Set("user_id", 7))
	require.NoError(t, h.RegenerateID(ctx, true))
	require.NoError(t, h.Close(ctx))

	// Second request: read
	rec2 := httptest.NewRecorder()
	h2, err := m.NewSession(ctx, rec2, followUp(rec))
	require.NoError(t, err)
	v, ok, err := h2.Get("user_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	// Third request: log out
	require.NoError(t, h2.Destroy(ctx))
	h3, err := m.NewSession(ctx, httptest.NewRecorder(), followUp(rec2))
	require.NoError(t, err)
	_, ok, err = h3.Get("user_id")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	assert.Equal(t, "sid", cfg.Name)
	assert.True(t, cfg.StrictMode)
	assert.Equal(t, 24*time.Minute, cfg.MaxLifetime)
	assert.Equal(t, 32, cfg.IDBytes)
	assert.Equal(t, cookie.Signed, cfg.CookieEncoding)
	assert.Equal(t, "/", cfg.Cookie.Path)
	assert.True(t, cfg.Cookie.HTTPOnly)
}
