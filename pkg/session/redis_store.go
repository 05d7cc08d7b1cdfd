package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix namespaces session records in a shared database
const DefaultRedisKeyPrefix = "session:"

// RedisStore implements Store on top of a go-redis client.
// Records are JSON objects and expire through the native key TTL. Values come back
// the way Data.UnmarshalJSON decodes them: integral numbers as int, other numbers
// as float64, objects as map[string]any, arrays as []any. Struct values therefore
// read back as maps.
type RedisStore struct {
	db     redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides DefaultRedisKeyPrefix
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore wraps an existing redis client
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		db:     client,
		prefix: DefaultRedisKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read loads and decodes the record stored under id
func (s *RedisStore) Read(ctx context.Context, id string) (*Data, error) {
	raw, err := s.db.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	data := &Data{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, errors.Join(ErrSessionNotFound, err)
	}
	return data, nil
}

// Write encodes data and stores it with ttl. Zero ttl means no expiration.
func (s *RedisStore) Write(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	if id == "" {
		return ErrInvalidID
	}
	if data == nil {
		data = &Data{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.db.Set(ctx, s.key(id), raw, ttl).Err()
}

// Delete removes the record stored under id
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.db.Del(ctx, s.key(id)).Err()
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}
