package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// State is the lifecycle position of a Handle.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateClosed
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Representation keys added next to the session entries.
const (
	RepresentationIDKey   = "sessionId"
	RepresentationNameKey = "sessionName"
)

// OpenOption configures how Open starts a session
type OpenOption func(*openConfig)

type openConfig struct {
	name       string
	id         string
	regenerate bool
}

// OpenWithName renames the session before it starts
func OpenWithName(name string) OpenOption {
	return func(c *openConfig) {
		c.name = name
	}
}

// OpenWithID pins the session id used at start
func OpenWithID(id string) OpenOption {
	return func(c *openConfig) {
		c.id = id
	}
}

// OpenWithRegenerate issues a fresh id right after start, deleting the old record
func OpenWithRegenerate() OpenOption {
	return func(c *openConfig) {
		c.regenerate = true
	}
}

// Handle is an object view over the session of one Runtime.
//
// A handle goes Uninitialized → Active → Closed or Destroyed, and never back.
// Every data operation requires the handle to be active and fails with
// ErrInactiveSession otherwise. Name, status and cookie param accessors work in
// any state.
type Handle struct {
	rt           *Runtime
	state        State
	sessionID    string
	previousName string
	renamed      bool
}

// Open builds a handle on rt and starts the session.
//
// Open always returns a handle. When the session could not be started the error is
// returned alongside an inactive handle whose data operations fail with
// ErrInactiveSession.
func Open(ctx context.Context, rt *Runtime, opts ...OpenOption) (*Handle, error) {
	var cfg openConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Handle{rt: rt}

	if cfg.name != "" {
		if err := h.SetName(cfg.name); err != nil {
			return h, err
		}
	}
	if cfg.id != "" {
		if err := h.SetID(cfg.id); err != nil {
			return h, err
		}
	}

	if err := rt.Start(ctx); err != nil {
		return h, err
	}
	h.state = StateActive
	h.sessionID = rt.ID()

	if cfg.regenerate {
		if err := h.RegenerateID(ctx, true); err != nil {
			return h, err
		}
	}

	return h, nil
}

// OpenFromContext opens a handle on the runtime installed by Manager.Middleware
func OpenFromContext(ctx context.Context, opts ...OpenOption) (*Handle, error) {
	rt, ok := RuntimeFromContext(ctx)
	if !ok {
		return &Handle{}, ErrNoRuntime
	}
	return Open(ctx, rt, opts...)
}

// State returns the lifecycle state
func (h *Handle) State() State {
	return h.state
}

// IsActive reports whether the session is started and writable through this handle
func (h *Handle) IsActive() bool {
	return h.state == StateActive && h.rt != nil && h.rt.Status() == StatusActive
}

// Status returns the status of the underlying runtime
func (h *Handle) Status() Status {
	if h.rt == nil {
		return StatusDisabled
	}
	return h.rt.Status()
}

// Name returns the session name
func (h *Handle) Name() string {
	if h.rt == nil {
		return ""
	}
	return h.rt.Name()
}

// SetName renames the session. It only has an effect before the session starts.
func (h *Handle) SetName(name string) error {
	if h.rt == nil {
		return ErrNoRuntime
	}
	prev, err := h.rt.SetName(name)
	if err != nil {
		return err
	}
	h.previousName = prev
	h.renamed = true
	return nil
}

// PreviousName returns the name in effect before the last SetName
func (h *Handle) PreviousName() (string, bool) {
	return h.previousName, h.renamed
}

// ID returns the current session id, re-read from the runtime on every call
func (h *Handle) ID() (string, error) {
	if err := h.verify(); err != nil {
		return "", err
	}
	h.sessionID = h.rt.ID()
	return h.sessionID, nil
}

// SetID pins the id used when the session starts
func (h *Handle) SetID(id string) error {
	if h.rt == nil {
		return ErrNoRuntime
	}
	if _, err := h.rt.SetID(id); err != nil {
		return err
	}
	h.sessionID = id
	return nil
}

// RegenerateID replaces the session id. With deleteOld the data stored under the
// old id is discarded.
func (h *Handle) RegenerateID(ctx context.Context, deleteOld bool) error {
	if err := h.verify(); err != nil {
		return err
	}
	if err := h.rt.RegenerateID(ctx, deleteOld); err != nil {
		return err
	}
	h.sessionID = h.rt.ID()
	return nil
}

// Get returns the value stored under key.
// A missing key yields (nil, false, nil); an empty key is ErrInvalidKey.
func (h *Handle) Get(key string) (any, bool, error) {
	data, err := h.data()
	if err != nil {
		return nil, false, err
	}
	if key == "" {
		return nil, false, ErrInvalidKey
	}
	v, ok := data.Get(key)
	return v, ok, nil
}

// Set inserts or overwrites the value under key
func (h *Handle) Set(key string, value any) error {
	data, err := h.data()
	if err != nil {
		return err
	}
	if key == "" {
		return ErrInvalidKey
	}
	data.Set(key, value)
	return nil
}

// At returns the value under integer key index.
// A negative index is ErrInvalidKey; a missing one yields (nil, false, nil).
func (h *Handle) At(index int) (any, bool, error) {
	data, err := h.data()
	if err != nil {
		return nil, false, err
	}
	if index < 0 {
		return nil, false, ErrInvalidKey
	}
	v, ok := data.At(index)
	return v, ok, nil
}

// Push appends value and returns the new number of entries
func (h *Handle) Push(value any) (int, error) {
	data, err := h.data()
	if err != nil {
		return 0, err
	}
	return data.Push(value), nil
}

// Pop removes and returns the last entry; ok is false on an empty session
func (h *Handle) Pop() (any, bool, error) {
	data, err := h.data()
	if err != nil {
		return nil, false, err
	}
	v, ok := data.Pop()
	return v, ok, nil
}

// Unshift prepends value and returns the new number of entries
func (h *Handle) Unshift(value any) (int, error) {
	data, err := h.data()
	if err != nil {
		return 0, err
	}
	return data.Unshift(value), nil
}

// Shift removes and returns the first entry; ok is false on an empty session
func (h *Handle) Shift() (any, bool, error) {
	data, err := h.data()
	if err != nil {
		return nil, false, err
	}
	v, ok := data.Shift()
	return v, ok, nil
}

// All returns a copy of the full mapping
func (h *Handle) All() (*Data, error) {
	data, err := h.data()
	if err != nil {
		return nil, err
	}
	return data.Clone(), nil
}

// Initialize clears the session and installs data as its content.
// See DataFrom for the accepted inputs; anything else is ErrMalformedInitData and
// leaves the session untouched.
func (h *Handle) Initialize(data any) error {
	current, err := h.data()
	if err != nil {
		return err
	}
	next, err := DataFrom(data)
	if err != nil {
		return err
	}
	current.Clear()
	for k, v := range next.All() {
		current.Set(k, v)
	}
	return nil
}

// Delete removes every entry; the session stays active
func (h *Handle) Delete() error {
	if err := h.verify(); err != nil {
		return err
	}
	return h.rt.Unset()
}

// Remove deletes the entry under key if present
func (h *Handle) Remove(key string) error {
	data, err := h.data()
	if err != nil {
		return err
	}
	data.Delete(key)
	return nil
}

// Reset discards changes made since the last write by reloading persisted data
func (h *Handle) Reset(ctx context.Context) error {
	if err := h.verify(); err != nil {
		return err
	}
	return h.rt.Reset(ctx)
}

// SetCookie emits an arbitrary cookie; Name defaults to the session name
func (h *Handle) SetCookie(opts CookieOptions) error {
	if err := h.verify(); err != nil {
		return err
	}
	return h.rt.SetCookie(opts)
}

// CookieParams returns the session cookie params in effect
func (h *Handle) CookieParams() CookieParams {
	if h.rt == nil {
		return CookieParams{}
	}
	return h.rt.CookieParams()
}

// SetCookieParams replaces the session cookie params. Only effective before start.
func (h *Handle) SetCookieParams(params CookieParams) error {
	if h.rt == nil {
		return ErrNoRuntime
	}
	return h.rt.SetCookieParams(params)
}

// SetCookieLifetime sets the lifetime of the session cookie
func (h *Handle) SetCookieLifetime(d time.Duration) error {
	return h.updateCookieParams(func(p *CookieParams) { p.Lifetime = d })
}

// SetCookiePath sets the path of the session cookie
func (h *Handle) SetCookiePath(path string) error {
	return h.updateCookieParams(func(p *CookieParams) { p.Path = path })
}

// SetCookieDomain sets the domain of the session cookie
func (h *Handle) SetCookieDomain(domain string) error {
	return h.updateCookieParams(func(p *CookieParams) { p.Domain = domain })
}

// SetCookieSecure sets the Secure flag of the session cookie
func (h *Handle) SetCookieSecure(secure bool) error {
	return h.updateCookieParams(func(p *CookieParams) { p.Secure = secure })
}

// SetCookieHTTPOnly sets the HttpOnly flag of the session cookie
func (h *Handle) SetCookieHTTPOnly(httpOnly bool) error {
	return h.updateCookieParams(func(p *CookieParams) { p.HTTPOnly = httpOnly })
}

// SetCookieSameSite sets the SameSite mode of the session cookie
func (h *Handle) SetCookieSameSite(mode http.SameSite) error {
	return h.updateCookieParams(func(p *CookieParams) { p.SameSite = mode })
}

// Close writes the session and makes the handle inert.
// Closing an inactive handle is a no-op.
func (h *Handle) Close(ctx context.Context) error {
	if h.state != StateActive {
		return nil
	}
	h.state = StateClosed
	return h.rt.WriteClose(ctx)
}

// Destroy expires the client cookie, deletes the persisted data and makes the
// handle inert.
func (h *Handle) Destroy(ctx context.Context) error {
	if err := h.verify(); err != nil {
		return err
	}
	h.state = StateDestroyed
	return errors.Join(h.rt.ExpireCookie(), h.rt.Destroy(ctx))
}

// Representation returns the session entries plus the session id and name
func (h *Handle) Representation() (map[string]any, error) {
	data, err := h.representation()
	if err != nil {
		return nil, err
	}
	return data.Map(), nil
}

// MarshalJSON encodes the representation as an ordered JSON object
func (h *Handle) MarshalJSON() ([]byte, error) {
	data, err := h.representation()
	if err != nil {
		return nil, err
	}
	return json.Marshal(data)
}

func (h *Handle) representation() (*Data, error) {
	data, err := h.data()
	if err != nil {
		return nil, err
	}
	out := data.Clone()
	out.Set(RepresentationIDKey, h.rt.ID())
	out.Set(RepresentationNameKey, h.rt.Name())
	return out, nil
}

func (h *Handle) updateCookieParams(fn func(*CookieParams)) error {
	if h.rt == nil {
		return ErrNoRuntime
	}
	params := h.rt.CookieParams()
	fn(&params)
	return h.rt.SetCookieParams(params)
}

func (h *Handle) verify() error {
	if !h.IsActive() {
		return ErrInactiveSession
	}
	return nil
}

func (h *Handle) data() (*Data, error) {
	if err := h.verify(); err != nil {
		return nil, err
	}
	return h.rt.Data(), nil
}
