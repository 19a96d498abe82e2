package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sesskit/pkg/cache"
)

const (
	selectEntry = `SELECT value FROM cache_entries
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`
	upsertEntry = `INSERT INTO cache_entries (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`
	deleteEntry   = `DELETE FROM cache_entries WHERE key = $1`
	deleteExpired = `DELETE FROM cache_entries WHERE expires_at IS NOT NULL AND expires_at <= now()`
)

// Storage implements cache.Backend on the cache_entries table created by Migrate.
// Expired rows are invisible to Get and removed by DeleteExpired.
type Storage struct {
	pool *pgxpool.Pool
}

var _ cache.Backend = (*Storage)(nil)

// NewStorage wraps a connection pool.
func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Get returns cache.ErrNotFound for missing or expired rows.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, cache.ErrEmptyKey
	}

	var value []byte
	if err := s.pool.QueryRow(ctx, selectEntry, key).Scan(&value); err != nil {
		if IsNotFoundError(err) {
			return nil, cache.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set upserts the row. Zero ttl stores it without expiry.
func (s *Storage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return cache.ErrEmptyKey
	}

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := s.pool.Exec(ctx, upsertEntry, key, value, expiresAt)
	return err
}

// Delete removes the row. Missing rows are not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return cache.ErrEmptyKey
	}
	_, err := s.pool.Exec(ctx, deleteEntry, key)
	return err
}

// DeleteExpired removes expired rows and returns how many were deleted.
func (s *Storage) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, deleteExpired)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// RunCleanup calls DeleteExpired every interval until ctx is done.
func (s *Storage) RunCleanup(ctx context.Context, interval time.Duration, log logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.DeleteExpired(ctx)
			if err != nil {
				log.ErrorContext(ctx, "Failed to delete expired cache entries", "error", err)
				continue
			}
			if n > 0 {
				log.InfoContext(ctx, "Deleted expired cache entries", "count", n)
			}
		}
	}
}
