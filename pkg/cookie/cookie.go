package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"
)

const minSecretLength = 32

// Manager writes and reads cookies using shared default attributes and a set of
// rotating secrets. The first secret signs and encrypts; all of them verify.
type Manager struct {
	secrets  []string
	defaults Options
}

func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		secrets:  secrets,
		defaults: applyOptions(defaults, opts),
	}, nil
}

// Defaults returns the attributes applied to every cookie before per-call options.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Write encodes value with enc and sets the cookie.
func (m *Manager) Write(w http.ResponseWriter, enc Encoding, name, value string, opts ...Option) error {
	encoded, err := m.encode(enc, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, applyOptions(m.defaults, opts).cookie(name, encoded))
	return nil
}

// Read returns the decoded value of the named cookie.
func (m *Manager) Read(r *http.Request, enc Encoding, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return m.decode(enc, c.Value)
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Write(w, Plain, name, value, opts...)
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	return m.Read(r, Plain, name)
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Write(w, Signed, name, value, opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	return m.Read(r, Signed, name)
}

func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Write(w, Encrypted, name, value, opts...)
}

func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	return m.Read(r, Encrypted, name)
}

// Delete expires the named cookie on the client. Path and domain options must match
// the ones the cookie was set with, otherwise the browser keeps the original.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := applyOptions(m.defaults, opts)
	options.MaxAge = -1
	options.Expires = time.Unix(0, 0)
	http.SetCookie(w, options.cookie(name, ""))
}
