package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const maxIDLength = 256

// IDGenerator produces new session identifiers
type IDGenerator func() (string, error)

// RandomIDGenerator returns a generator of base64url encoded ids backed by n random bytes
func RandomIDGenerator(n int) IDGenerator {
	if n <= 0 {
		n = 32
	}
	return func() (string, error) {
		b := make([]byte, n)
		if _, err := rand.Read(b); err != nil {
			return "", errors.Join(ErrIDGeneration, err)
		}
		return base64.RawURLEncoding.EncodeToString(b), nil
	}
}

// UUIDGenerator produces random (version 4) UUID session ids
func UUIDGenerator() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return id.String(), nil
}

// ValidateID checks that id is usable as a session identifier:
// 1 to 256 characters out of [A-Za-z0-9,_-].
func ValidateID(id string) error {
	if id == "" || len(id) > maxIDLength {
		return fmt.Errorf("%w: length %d", ErrInvalidID, len(id))
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == ',' || c == '-' || c == '_':
		default:
			return fmt.Errorf("%w: unexpected character %q", ErrInvalidID, c)
		}
	}
	return nil
}
