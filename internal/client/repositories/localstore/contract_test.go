package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every Repository must share.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("set then get", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "token", []byte("abc")))

		v, err := r.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), v)
	})

	t.Run("absent key is nil, nil", func(t *testing.T) {
		r := newRepo(t)

		v, err := r.Get(context.Background(), "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "cart", []byte("old")))
		require.NoError(t, r.Set(ctx, "cart", []byte("new")))

		v, err := r.Get(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "user", []byte(`{"id":1}`)))
		require.NoError(t, r.Set(ctx, "token", []byte("t")))

		assertValue(t, r, "user", []byte(`{"id":1}`))
		assertValue(t, r, "token", []byte("t"))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "user", []byte("x")))
		require.NoError(t, r.Delete(ctx, "user"))

		v, err := r.Get(ctx, "user")
		require.NoError(t, err)
		assert.Nil(t, v)

		require.NoError(t, r.Delete(ctx, "user"))
	})

	t.Run("delete keys removes only the listed keys", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "user", []byte("{}")))
		require.NoError(t, r.Set(ctx, "token", []byte("t")))
		require.NoError(t, r.Set(ctx, "other", []byte("keep")))

		require.NoError(t, r.DeleteKeys(ctx, "user", "token", "cart"))

		assertValue(t, r, "user", nil)
		assertValue(t, r, "token", nil)
		assertValue(t, r, "other", []byte("keep"))
	})
}

func assertValue(t *testing.T, r Repository, key string, want []byte) {
	t.Helper()
	v, err := r.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, want, v)
}
