package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Runtime owns the session state of a single request: the session name and id, the
// cookie params and, while a session is started, the ambient key/value Data.
//
// A Runtime is not safe for concurrent use. Store access is the only blocking work and
// takes a context.
type Runtime struct {
	manager *Manager
	w       http.ResponseWriter
	r       *http.Request

	name      string
	id        string
	requestID string
	params    CookieParams
	status    Status
	data      *Data
}

// Status reports whether sessions are disabled, not started or active
func (rt *Runtime) Status() Status {
	return rt.status
}

// Name returns the current session name
func (rt *Runtime) Name() string {
	return rt.name
}

// SetName renames the session and returns the previous name.
// Renaming is refused once the session is active.
func (rt *Runtime) SetName(name string) (string, error) {
	if rt.status == StatusActive {
		return rt.name, ErrSessionStarted
	}
	if err := validateName(name); err != nil {
		return rt.name, err
	}
	prev := rt.name
	rt.name = name
	return prev, nil
}

// ID returns the current session id; empty before start unless pinned with SetID
func (rt *Runtime) ID() string {
	return rt.id
}

// SetID pins the id the next Start will use and returns the previous id
func (rt *Runtime) SetID(id string) (string, error) {
	if rt.status == StatusActive {
		return rt.id, ErrSessionStarted
	}
	if err := ValidateID(id); err != nil {
		return rt.id, err
	}
	prev := rt.id
	rt.id = id
	return prev, nil
}

// CookieParams returns the cookie params in effect
func (rt *Runtime) CookieParams() CookieParams {
	return rt.params
}

// SetCookieParams replaces the cookie params; only possible before start
func (rt *Runtime) SetCookieParams(params CookieParams) error {
	if rt.status == StatusActive {
		return ErrSessionStarted
	}
	rt.params = params
	return nil
}

// Data returns the ambient key/value store, nil when no session is active
func (rt *Runtime) Data() *Data {
	if rt.status != StatusActive {
		return nil
	}
	return rt.data
}

// Start resolves the session id, loads its data and sends the id to the client.
// Starting an active runtime is a no-op.
func (rt *Runtime) Start(ctx context.Context) error {
	switch rt.status {
	case StatusDisabled:
		return ErrSessionsDisabled
	case StatusActive:
		return nil
	}

	m := rt.manager
	id, pinned := rt.id, rt.id != ""
	if !pinned {
		if got, err := m.transport.ReadID(rt.r, rt.name); err == nil && ValidateID(got) == nil {
			id = got
			rt.requestID = got
		}
	}

	data := &Data{}
	if id != "" {
		stored, err := m.store.Read(ctx, id)
		switch {
		case err == nil:
			data = stored
		case errors.Is(err, ErrSessionNotFound):
			if m.config.StrictMode && !pinned {
				m.logger.DebugContext(ctx, "rejected unknown session id", logger.SessionName(rt.name))
				id = ""
			}
		default:
			return err
		}
	}

	if id == "" {
		newID, err := m.newID()
		if err != nil {
			return err
		}
		id = newID
	}

	rt.id = id
	rt.data = data
	rt.status = StatusActive

	if id != rt.requestID || rt.params.Lifetime > 0 {
		if err := m.transport.WriteID(rt.w, rt.name, id, rt.params); err != nil {
			rt.status = StatusNone
			rt.data = nil
			return err
		}
	}

	m.logger.DebugContext(ctx, "session started", logger.SessionName(rt.name), logger.SessionID(id))
	return nil
}

// RegenerateID switches the active session to a fresh id. With deleteOld the record
// under the old id is removed, otherwise it keeps a copy of the current data.
func (rt *Runtime) RegenerateID(ctx context.Context, deleteOld bool) error {
	if rt.status != StatusActive {
		return ErrInactiveSession
	}

	m := rt.manager
	newID, err := m.newID()
	if err != nil {
		return err
	}

	oldID := rt.id
	if deleteOld {
		err = m.store.Delete(ctx, oldID)
	} else {
		err = m.store.Write(ctx, oldID, rt.data, m.config.MaxLifetime)
	}
	if err != nil {
		return err
	}

	rt.id = newID
	if err := m.transport.WriteID(rt.w, rt.name, newID, rt.params); err != nil {
		return err
	}

	m.logger.DebugContext(ctx, "session id regenerated",
		logger.SessionName(rt.name),
		logger.SessionID(newID),
		logger.Event("regenerate"),
	)
	return nil
}

// WriteClose persists the data and ends the session for this runtime.
// The runtime is closed even if the write fails.
func (rt *Runtime) WriteClose(ctx context.Context) error {
	if rt.status != StatusActive {
		return nil
	}

	m := rt.manager
	err := m.store.Write(ctx, rt.id, rt.data, m.config.MaxLifetime)
	rt.status = StatusNone
	rt.data = nil

	if err != nil {
		m.logger.ErrorContext(ctx, "failed to write session", logger.SessionID(rt.id), logger.Error(err))
		return err
	}
	return nil
}

// Reset discards unsaved changes by reloading the persisted data
func (rt *Runtime) Reset(ctx context.Context) error {
	if rt.status != StatusActive {
		return ErrInactiveSession
	}

	stored, err := rt.manager.store.Read(ctx, rt.id)
	switch {
	case err == nil:
		rt.data = stored
	case errors.Is(err, ErrSessionNotFound):
		rt.data = &Data{}
	default:
		return err
	}
	return nil
}

// Unset removes every entry from the active session
func (rt *Runtime) Unset() error {
	if rt.status != StatusActive {
		return ErrInactiveSession
	}
	rt.data.Clear()
	return nil
}

// Destroy deletes the persisted data and ends the session without writing.
// The client keeps its cookie; see ExpireCookie.
func (rt *Runtime) Destroy(ctx context.Context) error {
	if rt.status != StatusActive {
		return ErrInactiveSession
	}

	m := rt.manager
	id := rt.id
	rt.status = StatusNone
	rt.data = nil
	rt.id = ""

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	m.logger.DebugContext(ctx, "session destroyed", logger.SessionName(rt.name), logger.SessionID(id))
	return nil
}

// ExpireCookie tells the client to drop the session id
func (rt *Runtime) ExpireCookie() error {
	return rt.manager.transport.ClearID(rt.w, rt.name, rt.params)
}

// CookieOptions describes an arbitrary cookie for Runtime.SetCookie.
// Empty Name means the current session name; zero Expire means a browser-session cookie.
type CookieOptions struct {
	Name     string
	Value    string
	Expire   time.Time
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
}

// SetCookie writes a plain cookie through the manager's cookie manager.
// Unset Path and Domain fall back to the cookie manager defaults.
func (rt *Runtime) SetCookie(opts CookieOptions) error {
	m := rt.manager
	if m.cookieManager == nil {
		return ErrNoCookieManager
	}

	name := opts.Name
	if name == "" {
		name = rt.name
	}

	cookieOpts := []cookie.Option{
		cookie.WithSecure(opts.Secure),
		cookie.WithHTTPOnly(opts.HTTPOnly),
	}
	if opts.Path != "" {
		cookieOpts = append(cookieOpts, cookie.WithPath(opts.Path))
	}
	if opts.Domain != "" {
		cookieOpts = append(cookieOpts, cookie.WithDomain(opts.Domain))
	}
	if !opts.Expire.IsZero() {
		maxAge := int(time.Until(opts.Expire).Seconds())
		if maxAge <= 0 {
			maxAge = -1
		}
		cookieOpts = append(cookieOpts, cookie.WithExpires(opts.Expire), cookie.WithMaxAge(maxAge))
	}

	return m.cookieManager.Set(rt.w, name, opts.Value, cookieOpts...)
}

func validateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	// Names made of digits only would be indistinguishable from ids
	if strings.Trim(name, "0123456789") == "" {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, "=,; \t\r\n\v\f") {
		return ErrInvalidName
	}
	return nil
}
