package cache

import (
	"context"
	"time"
)

// Backend is a key/value store with per-entry expiry.
// Get returns ErrNotFound when the key is absent or expired.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
