package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sesskit/pkg/cache"
)

// Storage implements cache.Backend on top of a go-redis client.
// Expiry is delegated to Redis (SET ... PX).
type Storage struct {
	db        redis.UniversalClient
	opTimeout time.Duration
}

var _ cache.Backend = (*Storage)(nil)

// NewStorage wraps a Redis client. opTimeout bounds every command; 0 disables it.
func NewStorage(client redis.UniversalClient, opTimeout time.Duration) *Storage {
	return &Storage{db: client, opTimeout: opTimeout}
}

// NewStorageFromConfig wraps client using the command timeout from cfg.
func NewStorageFromConfig(client redis.UniversalClient, cfg Config) *Storage {
	return NewStorage(client, cfg.OpTimeout)
}

// Get maps redis.Nil to cache.ErrNotFound and other failures to ErrCommandFailed.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, cache.ErrEmptyKey
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	val, err := s.db.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, cache.ErrNotFound
	case err != nil:
		return nil, errors.Join(ErrCommandFailed, err)
	}
	return val, nil
}

// Set stores value with expiration. Zero ttl means no expiration.
func (s *Storage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return cache.ErrEmptyKey
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.db.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Join(ErrCommandFailed, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return cache.ErrEmptyKey
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.db.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrCommandFailed, err)
	}
	return nil
}

// Close terminates the Redis connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}
