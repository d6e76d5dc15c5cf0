// Package redis_test provides unit tests for the Redis cache.
package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/cache"
	rediscache "github.com/Chaitanya-OverDev/AgriAssist/internal/infrastructure/cache/redis"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, cache.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := rediscache.NewClient(rediscache.Config{
		Host:     mr.Host(),
		Port:     mr.Port(),
		Password: "",
		DB:       0,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return mr, client
}

func TestCache_SetAndGet(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	err := client.Set(ctx, "key", []byte("value"), time.Minute)
	assert.NoError(t, err)

	result, err := client.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), result)
}

func TestCache_GetNotFound(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	result, err := client.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCache_SetWithoutTTLDoesNotExpire(t *testing.T) {
	mr, client := setupMiniredis(t)
	ctx := context.Background()

	err := client.Set(ctx, "key", []byte("value"), 0)
	require.NoError(t, err)

	mr.FastForward(24 * time.Hour)

	result, err := client.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), result)
}

func TestCache_SetWithTTLExpires(t *testing.T) {
	mr, client := setupMiniredis(t)
	ctx := context.Background()

	err := client.Set(ctx, "key", []byte("value"), time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	result, err := client.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCache_Delete(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "key", []byte("value"), 0))

	deleted, err := client.Delete(ctx, "key")
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = client.Delete(ctx, "key")
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestCache_DeletePattern(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "market:Gujarat:A", []byte("a"), 0))
	require.NoError(t, client.Set(ctx, "market:Gujarat:B", []byte("b"), 0))
	require.NoError(t, client.Set(ctx, "market:Punjab:A", []byte("c"), 0))

	count, err := client.DeletePattern(ctx, "market:Gujarat:*")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	result, err := client.Get(ctx, "market:Punjab:A")
	assert.NoError(t, err)
	assert.Equal(t, []byte("c"), result)
}

func TestCache_Keys(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "weather:u1", []byte("a"), 0))
	require.NoError(t, client.Set(ctx, "weather:u2", []byte("b"), 0))
	require.NoError(t, client.Set(ctx, "market:Gujarat", []byte("c"), 0))

	keys, err := client.Keys(ctx, "weather:*")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"weather:u1", "weather:u2"}, keys)
}

func TestCache_Ping(t *testing.T) {
	_, client := setupMiniredis(t)

	assert.NoError(t, client.Ping(context.Background()))
}
