package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/cache"
	"github.com/dmitrymomot/sesskit/pkg/mongo"
)

// Integration tests run only when MONGODB_URL points at a disposable server.
func newTestStorage(t *testing.T) *mongo.Storage {
	t.Helper()
	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL not set")
	}

	ctx := context.Background()
	store, client, err := mongo.NewStorageFromConfig(ctx, mongo.Config{
		ConnectionURL:  url,
		Database:       "sesskit_test",
		Collection:     "cache_entries",
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    4,
		RetryAttempts:  1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, mongo.Healthcheck(client)(ctx))
	require.NoError(t, store.EnsureIndexes(ctx), "index creation is idempotent")
	return store
}

func TestStorage(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	_, err := s.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, s.Set(ctx, key, []byte("one"), time.Minute))
	val, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "one", string(val))

	require.NoError(t, s.Set(ctx, key, []byte("two"), 0))
	val, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "two", string(val))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestStorage_ExpiredHiddenBeforeTTLMonitor(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	key := "test:" + uuid.NewString()
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	require.NoError(t, s.Set(ctx, key, []byte("v"), 10*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	_, err := s.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestNew_EmptyURL(t *testing.T) {
	_, err := mongo.New(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
}
