package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// CookieParams describes the attributes used whenever a session cookie is emitted.
type CookieParams struct {
	// Lifetime of the cookie; zero means the cookie lives until the browser closes
	Lifetime time.Duration `env:"LIFETIME" envDefault:"0s"`
	Path     string        `env:"PATH" envDefault:"/"`
	Domain   string        `env:"DOMAIN" envDefault:""`
	Secure   bool          `env:"SECURE" envDefault:"false"`
	HTTPOnly bool          `env:"HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode
}

// Config holds session configuration
type Config struct {
	// Name is the default session name, also used as the cookie name (default: "sid")
	Name string `env:"SESSION_NAME" envDefault:"sid"`

	// Disabled turns every Start into ErrSessionsDisabled
	Disabled bool `env:"SESSION_DISABLED" envDefault:"false"`

	// StrictMode rejects client supplied ids that have no stored session
	StrictMode bool `env:"SESSION_STRICT_MODE" envDefault:"true"`

	// MaxLifetime is how long persisted session data survives without a write
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24m"`

	// CleanupInterval for expired sessions in the memory store (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// IDBytes is the amount of random bytes behind a generated session id
	IDBytes int `env:"SESSION_ID_BYTES" envDefault:"32"`

	// CookieEncoding selects how the id is stored in the cookie: plain, signed or encrypted
	CookieEncoding cookie.Encoding `env:"SESSION_COOKIE_ENCODING" envDefault:"signed"`

	Cookie CookieParams `envPrefix:"SESSION_COOKIE_"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		Name:            "sid",
		StrictMode:      true,
		MaxLifetime:     24 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		IDBytes:         32,
		CookieEncoding:  cookie.Signed,
		Cookie: CookieParams{
			Path:     "/",
			HTTPOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// NewFromConfig creates a new Manager from the provided Config.
// Cookie manager required for default cookie transport.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
