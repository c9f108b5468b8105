package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-gallery/internal/config"
	"media-gallery/internal/platform/cache"
	"media-gallery/internal/testutils"
)

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := cache.NewRedisClient(config.CacheConfig{Enabled: false})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "cache is disabled")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	client, err := cache.NewRedisClient(config.CacheConfig{
		Enabled:     true,
		Address:     "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestRedisClient_DeletionLog(t *testing.T) {
	testutils.SkipIfShort(t)

	ctx := context.Background()
	valkey, err := testutils.StartValkey(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, valkey.Terminate(context.Background()))
	})

	client, err := cache.NewRedisClient(testutils.CacheConfig(valkey.Endpoint, "gallery-test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	t.Run("health", func(t *testing.T) {
		assert.NoError(t, client.Health(ctx))
	})

	t.Run("empty log", func(t *testing.T) {
		ids, err := client.Deleted(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("record and read back", func(t *testing.T) {
		require.NoError(t, client.Record(ctx, 4))
		require.NoError(t, client.Record(ctx, 18))
		// recording twice is a no-op
		require.NoError(t, client.Record(ctx, 4))

		ids, err := client.Deleted(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{4, 18}, ids)
	})

	t.Run("prefixes are isolated", func(t *testing.T) {
		other, err := cache.NewRedisClient(testutils.CacheConfig(valkey.Endpoint, "other"))
		require.NoError(t, err)
		defer other.Close()

		ids, err := other.Deleted(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, client.Reset(ctx))

		ids, err := client.Deleted(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
