package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAndGet_ShouldRoundTrip", func(t *testing.T) {
		cache := NewCacheRepository()
		require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

		value, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)

		exists, err := cache.Exists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("MissingKey_ShouldError", func(t *testing.T) {
		cache := NewCacheRepository()
		_, err := cache.Get(ctx, "missing")
		assert.Error(t, err)
	})

	t.Run("ExpiredKey_ShouldError", func(t *testing.T) {
		cache := NewCacheRepository()
		require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		_, err := cache.Get(ctx, "k")
		assert.Error(t, err)

		exists, err := cache.Exists(ctx, "k")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete_ShouldRemoveKey", func(t *testing.T) {
		cache := NewCacheRepository()
		require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, cache.Delete(ctx, "k"))

		_, err := cache.Get(ctx, "k")
		assert.Error(t, err)
	})

	t.Run("ZeroTTL_ShouldDefaultToLongExpiry", func(t *testing.T) {
		cache := NewCacheRepository()
		require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))

		value, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)
	})
}
