package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryBackend implements Backend in process memory on top of LRUCache.
// It is only shared between requests of a single process.
type MemoryBackend struct {
	entries *LRUCache[string, []byte]
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewMemoryBackend creates an in-memory backend holding at most capacity entries.
// A positive cleanupInterval starts a goroutine that drops expired entries; stop it with Close.
func NewMemoryBackend(capacity int, cleanupInterval time.Duration) *MemoryBackend {
	m := &MemoryBackend{
		entries: NewLRUCache[string, []byte](capacity),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		m.ticker = time.NewTicker(cleanupInterval)
		go m.cleanupLoop()
	}

	return m
}

// Get returns a copy of the stored value.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	val, ok := m.entries.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(val), nil
}

// Set stores a copy of value. A ttl <= 0 means no expiry.
func (m *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.entries.Put(key, slices.Clone(value), ttl)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.entries.Remove(key)
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryBackend) Len() int {
	return m.entries.Len()
}

// Close stops the cleanup goroutine.
func (m *MemoryBackend) Close() error {
	m.once.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryBackend) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.entries.DeleteExpired()
		case <-m.done:
			return
		}
	}
}
