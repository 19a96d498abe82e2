package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/cache"
	"github.com/dmitrymomot/sesskit/pkg/redis"
)

func newTestStorage(t *testing.T) (*redis.Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewStorage(client, time.Second), mr
}

func TestStorage(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStorage(t)

	t.Run("miss", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("set with ttl", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "Session.abc", []byte(`{"a":1}`), 30*time.Minute))

		val, err := s.Get(ctx, "Session.abc")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(val))
		assert.Equal(t, 30*time.Minute, mr.TTL("Session.abc"))
	})

	t.Run("set refreshes ttl", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "keep", []byte("v"), time.Minute))
		mr.FastForward(50 * time.Second)
		require.NoError(t, s.Set(ctx, "keep", []byte("v"), time.Minute))
		mr.FastForward(50 * time.Second)

		_, err := s.Get(ctx, "keep")
		assert.NoError(t, err)
	})

	t.Run("expires", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "short", []byte("v"), time.Second))
		mr.FastForward(2 * time.Second)

		_, err := s.Get(ctx, "short")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "gone", []byte("v"), 0))
		require.NoError(t, s.Delete(ctx, "gone"))
		require.NoError(t, s.Delete(ctx, "gone"))
		assert.False(t, mr.Exists("gone"))
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := s.Get(ctx, "")
		assert.ErrorIs(t, err, cache.ErrEmptyKey)
	})
}

func TestStorage_BackendDown(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStorage(t)
	mr.Close()

	_, err := s.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrNotFound)
	assert.ErrorIs(t, err, redis.ErrCommandFailed)
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := redis.Connect(ctx, redis.Config{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  1,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		assert.NoError(t, redis.Healthcheck(client)(ctx))
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := redis.Connect(ctx, redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := redis.Connect(ctx, redis.Config{ConnectionURL: "http://nope"})
		assert.ErrorIs(t, err, redis.ErrInvalidConnectionURL)
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := redis.Connect(ctx, redis.Config{
			ConnectionURL:  "redis://" + addr + "/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrNotReady)
	})
}

func TestHealthcheck_Fails(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	assert.ErrorIs(t, redis.Healthcheck(client)(context.Background()), redis.ErrHealthcheckFailed)
}
