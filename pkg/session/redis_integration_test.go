package session_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/cache"
	"github.com/dmitrymomot/sesskit/pkg/redis"
	"github.com/dmitrymomot/sesskit/pkg/secrets"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

func TestSession_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	registry := cache.NewRegistry()
	registry.Register(cache.DefaultInstance, redis.NewStorage(client, time.Second),
		cache.WithDuration(30*time.Minute),
		cache.WithPrefix("sesskit:"),
	)

	m := session.New(
		session.WithCache(registry),
		session.WithCipher(secrets.MustNew(testSecret, testSalt)),
		session.WithConfig(session.Config{
			CookieName: testCookieName,
			Secret:     testSecret,
			KeyPrefix:  session.DefaultKeyPrefix,
		}),
	)
	ctx := context.Background()

	w := httptest.NewRecorder()
	s := m.Start(ctx, w, newRequest())
	require.True(t, s.Persisted())
	require.NoError(t, s.Set(ctx, "theme", "dark"))

	key := "sesskit:Session." + s.ID()
	require.True(t, mr.Exists(key))
	assert.Equal(t, 30*time.Minute, mr.TTL(key))

	t.Run("resume refreshes ttl", func(t *testing.T) {
		mr.FastForward(10 * time.Minute)
		assert.Equal(t, 20*time.Minute, mr.TTL(key))

		resumed := m.Start(ctx, httptest.NewRecorder(), newRequest(lastCookie(w, testCookieName)))
		assert.Equal(t, s.ID(), resumed.ID())
		theme, _ := resumed.GetString("theme")
		assert.Equal(t, "dark", theme)
		assert.Equal(t, 30*time.Minute, mr.TTL(key))
	})

	t.Run("expired record starts over", func(t *testing.T) {
		mr.FastForward(31 * time.Minute)
		require.False(t, mr.Exists(key))

		next := m.Start(ctx, httptest.NewRecorder(), newRequest(lastCookie(w, testCookieName)))
		state, reason := next.Validation()
		assert.Equal(t, session.StateInvalid, state)
		assert.ErrorIs(t, reason, session.ErrRecordNotFound)
		assert.NotEqual(t, s.ID(), next.ID())
	})

	t.Run("destroy removes the key", func(t *testing.T) {
		fresh := m.Start(ctx, httptest.NewRecorder(), newRequest())
		freshKey := "sesskit:Session." + fresh.ID()
		require.True(t, mr.Exists(freshKey))

		require.NoError(t, fresh.Destroy(ctx))
		assert.False(t, mr.Exists(freshKey))
	})

	t.Run("redis down", func(t *testing.T) {
		mr.Close()
		var fresh *session.Session
		assert.NotPanics(t, func() {
			fresh = m.Start(ctx, httptest.NewRecorder(), newRequest())
		})
		assert.False(t, fresh.Persisted())
		assert.ErrorIs(t, fresh.Set(ctx, "k", "v"), session.ErrSaveFailed)
	})
}
