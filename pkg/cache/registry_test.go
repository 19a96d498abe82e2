package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/cache"
)

type recordingBackend struct {
	keys []string
	ttls []time.Duration
	err  error
}

func (b *recordingBackend) Get(_ context.Context, key string) ([]byte, error) {
	b.keys = append(b.keys, key)
	return nil, cache.ErrNotFound
}

func (b *recordingBackend) Set(_ context.Context, key string, _ []byte, ttl time.Duration) error {
	b.keys = append(b.keys, key)
	b.ttls = append(b.ttls, ttl)
	return b.err
}

func (b *recordingBackend) Delete(_ context.Context, key string) error {
	b.keys = append(b.keys, key)
	return b.err
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("routes by instance with prefix and duration", func(t *testing.T) {
		reg := cache.NewRegistry()
		b := &recordingBackend{}
		reg.Register("sessions", b, cache.WithPrefix("app:"), cache.WithDuration(time.Hour))

		require.NoError(t, reg.Set(ctx, "Session.1", []byte("x"), "sessions"))
		_, err := reg.Get(ctx, "Session.1", "sessions")
		assert.ErrorIs(t, err, cache.ErrNotFound)
		require.NoError(t, reg.Delete(ctx, "Session.1", "sessions"))

		assert.Equal(t, []string{"app:Session.1", "app:Session.1", "app:Session.1"}, b.keys)
		assert.Equal(t, []time.Duration{time.Hour}, b.ttls)
	})

	t.Run("unknown instance", func(t *testing.T) {
		reg := cache.NewRegistry()

		_, err := reg.Get(ctx, "k", "nope")
		assert.ErrorIs(t, err, cache.ErrUnknownInstance)
		assert.ErrorIs(t, reg.Set(ctx, "k", nil, "nope"), cache.ErrUnknownInstance)
		assert.ErrorIs(t, reg.Delete(ctx, "k", "nope"), cache.ErrUnknownInstance)
	})

	t.Run("delete tolerates not found", func(t *testing.T) {
		reg := cache.NewRegistry()
		reg.Register(cache.DefaultInstance, &recordingBackend{err: cache.ErrNotFound})
		assert.NoError(t, reg.Delete(ctx, "k", cache.DefaultInstance))
	})

	t.Run("backend errors surface", func(t *testing.T) {
		boom := errors.New("boom")
		reg := cache.NewRegistry()
		reg.Register(cache.DefaultInstance, &recordingBackend{err: boom})
		assert.ErrorIs(t, reg.Set(ctx, "k", nil, cache.DefaultInstance), boom)
		assert.ErrorIs(t, reg.Delete(ctx, "k", cache.DefaultInstance), boom)
	})

	t.Run("instances are isolated", func(t *testing.T) {
		reg := cache.NewRegistry()
		a := cache.NewMemoryBackend(10, 0)
		b := cache.NewMemoryBackend(10, 0)
		reg.Register("a", a)
		reg.Register("b", b)

		require.NoError(t, reg.Set(ctx, "k", []byte("in-a"), "a"))
		_, err := reg.Get(ctx, "k", "b")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("nil backend panics", func(t *testing.T) {
		reg := cache.NewRegistry()
		assert.Panics(t, func() { reg.Register("x", nil) })
	})
}

func TestConfig(t *testing.T) {
	cfg := cache.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Len(t, cfg.InstanceOptions(), 2)

	cfg.Engine = "memcached"
	assert.ErrorIs(t, cfg.Validate(), cache.ErrUnknownEngine)

	t.Run("memory capacity must be positive", func(t *testing.T) {
		for _, capacity := range []int{0, -1} {
			cfg := cache.DefaultConfig()
			cfg.MemoryCapacity = capacity
			assert.ErrorIs(t, cfg.Validate(), cache.ErrInvalidCapacity)
		}
	})

	t.Run("capacity is ignored by remote engines", func(t *testing.T) {
		cfg := cache.DefaultConfig()
		cfg.Engine = cache.EngineRedis
		cfg.MemoryCapacity = 0
		assert.NoError(t, cfg.Validate())
	})
}
