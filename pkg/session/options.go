package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithStore sets a custom session store
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithDefaultName sets the session name used when a handle does not pick one
func WithDefaultName(name string) Option {
	return func(m *Manager) {
		m.config.Name = name
	}
}

// WithCookieParams sets the default cookie params of every runtime
func WithCookieParams(params CookieParams) Option {
	return func(m *Manager) {
		m.config.Cookie = params
	}
}

// WithMaxLifetime sets how long persisted session data survives without a write
func WithMaxLifetime(d time.Duration) Option {
	return func(m *Manager) {
		m.config.MaxLifetime = d
	}
}

// WithStrictMode toggles rejection of unknown client supplied ids
func WithStrictMode(strict bool) Option {
	return func(m *Manager) {
		m.config.StrictMode = strict
	}
}

// WithCleanupInterval sets the cleanup interval of the default memory store
func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.config.CleanupInterval = interval
	}
}

// WithIDGenerator replaces the random id generator
func WithIDGenerator(gen IDGenerator) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// WithLogger sets the logger used for session lifecycle events
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithCookieManager sets the cookie manager used by the default cookie transport
// and by Runtime.SetCookie. opts are applied on top of the session cookie params.
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
		m.cookieOptions = opts
	}
}
