package session

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	data      *Data
	expiresAt time.Time
}

func (r memoryRecord) expired(now time.Time) bool {
	return !r.expiresAt.IsZero() && now.After(r.expiresAt)
}

// MemoryStore implements Store interface using in-memory storage
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		records: make(map[string]memoryRecord),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Read returns a deep copy of the data stored under id; see Data.Clone
func (m *MemoryStore) Read(ctx context.Context, id string) (*Data, error) {
	m.mu.RLock()
	rec, exists := m.records[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if rec.expired(time.Now()) {
		m.mu.Lock()
		// A concurrent Write may have replaced the record since the read lock was released
		if cur, ok := m.records[id]; ok && cur.expired(time.Now()) {
			delete(m.records, id)
		}
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	return rec.data.Clone(), nil
}

// Write stores a deep copy of data under id. A ttl of zero never expires.
func (m *MemoryStore) Write(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	if id == "" {
		return ErrInvalidID
	}

	rec := memoryRecord{data: data.Clone()}
	if ttl > 0 {
		rec.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.records[id] = rec
	m.mu.Unlock()
	return nil
}

// Delete removes a record by id
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// DeleteExpired removes all expired records
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, rec := range m.records {
		if rec.expired(now) {
			delete(m.records, id)
		}
	}

	return nil
}

// Len returns the number of stored records, expired ones included
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close stops the cleanup goroutine
func (m *MemoryStore) Close() error {
	m.once.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

// cleanupLoop runs periodic cleanup of expired records
func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
