package session

import (
	"context"
	"time"
)

// Store defines the interface for session persistence
type Store interface {
	// Read loads the data persisted under id.
	// Returns ErrSessionNotFound when nothing is stored or the record expired.
	Read(ctx context.Context, id string) (*Data, error)

	// Write persists data under id for ttl
	Write(ctx context.Context, id string, data *Data, ttl time.Duration) error

	// Delete removes the data stored under id
	Delete(ctx context.Context, id string) error
}

// GarbageCollector is an optional interface for stores that need explicit expiry sweeps
type GarbageCollector interface {
	Store
	// DeleteExpired removes all expired records
	DeleteExpired(ctx context.Context) error
}
