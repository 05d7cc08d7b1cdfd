package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Manager is the process-level session host. It is built once at startup and hands
// out a Runtime per request; every setting a Runtime starts with comes from the
// Manager's Config.
type Manager struct {
	store         Store
	ownedStore    io.Closer
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	newID         IDGenerator
	logger        *slog.Logger
}

// New creates a new session manager with the given options
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			// Fail fast on misconfiguration rather than run without a transport
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieEncoding, m.cookieOptions...)
	}

	if m.store == nil {
		mem := NewMemoryStore(m.config.CleanupInterval)
		m.store = mem
		m.ownedStore = mem
	}

	if m.newID == nil {
		m.newID = RandomIDGenerator(m.config.IDBytes)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}

	return m
}

// Config returns the configuration the manager was built with
func (m *Manager) Config() Config {
	return m.config
}

// Store returns the persistence engine
func (m *Manager) Store() Store {
	return m.store
}

// Runtime creates the per-request session runtime bound to w and r
func (m *Manager) Runtime(w http.ResponseWriter, r *http.Request) *Runtime {
	status := StatusNone
	if m.config.Disabled {
		status = StatusDisabled
	}
	return &Runtime{
		manager: m,
		w:       w,
		r:       r,
		name:    m.config.Name,
		params:  m.config.Cookie,
		status:  status,
	}
}

// NewSession opens a handle on a fresh runtime for w and r using the default
// session name unless OpenWithName says otherwise.
func (m *Manager) NewSession(ctx context.Context, w http.ResponseWriter, r *http.Request, opts ...OpenOption) (*Handle, error) {
	return Open(ctx, m.Runtime(w, r), opts...)
}

// Close releases the store created by the manager itself
func (m *Manager) Close() error {
	if m.ownedStore != nil {
		return m.ownedStore.Close()
	}
	return nil
}
