package session_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/session"
)

func TestContext(t *testing.T) {
	env := setupManager(t)

	t.Run("WithSession and FromContext", func(t *testing.T) {
		s, _ := startFresh(t, env)
		ctx := session.WithSession(context.Background(), s)

		retrieved, ok := session.FromContext(ctx)
		assert.True(t, ok)
		assert.Same(t, s, retrieved)
		assert.Equal(t, s.ID(), session.CurrentID(ctx))
	})

	t.Run("FromContext with no session", func(t *testing.T) {
		sess, ok := session.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, sess)
	})

	t.Run("MustFromContext panics", func(t *testing.T) {
		assert.Panics(t, func() {
			session.MustFromContext(context.Background())
		})
	})
}

func TestFacade(t *testing.T) {
	env := setupManager(t)
	s := env.manager.Start(context.Background(), httptest.NewRecorder(), newRequest())
	ctx := session.WithSession(context.Background(), s)

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, session.Set(ctx, "lang", "en"))
		v, err := session.Get(ctx, "lang")
		require.NoError(t, err)
		assert.Equal(t, "en", v)
	})

	t.Run("get unset key", func(t *testing.T) {
		v, err := session.Get(ctx, "unset")
		assert.ErrorIs(t, err, session.ErrValueNotFound)
		assert.Nil(t, v)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, session.Set(ctx, "tmp", 1))
		require.NoError(t, session.Delete(ctx, "tmp"))
		_, err := session.Get(ctx, "tmp")
		assert.ErrorIs(t, err, session.ErrValueNotFound)
	})

	t.Run("destroy twice", func(t *testing.T) {
		require.NoError(t, session.Destroy(ctx))
		require.NoError(t, session.Destroy(ctx))
		assert.Empty(t, session.CurrentID(ctx))
		_, err := session.Get(ctx, "lang")
		assert.ErrorIs(t, err, session.ErrValueNotFound)
		assert.ErrorIs(t, session.Set(ctx, "lang", "de"), session.ErrEmptySessionID)
	})
}

func TestFacade_NoSession(t *testing.T) {
	ctx := context.Background()

	_, err := session.Get(ctx, "k")
	assert.ErrorIs(t, err, session.ErrNoSession)
	assert.ErrorIs(t, session.Set(ctx, "k", "v"), session.ErrNoSession)
	assert.ErrorIs(t, session.Delete(ctx, "k"), session.ErrNoSession)
	assert.NoError(t, session.Destroy(ctx))
	assert.Empty(t, session.CurrentID(ctx))
}
