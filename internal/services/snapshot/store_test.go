// Package snapshot_test provides unit tests for the snapshot store.
package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rediscache "github.com/Chaitanya-OverDev/AgriAssist/internal/infrastructure/cache/redis"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/snapshot"
)

func setupStore(t *testing.T) (snapshot.Store, *time.Time) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := rediscache.NewClient(rediscache.Config{
		Host: mr.Host(),
		Port: mr.Port(),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store, err := snapshot.NewStoreWithClock(client, func() time.Time { return now })
	require.NoError(t, err)

	return store, &now
}

type payload struct {
	Value string `json:"value"`
}

func TestStore_GetMissOnAbsentKey(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	var out payload
	hit, err := store.Get(ctx, "missing", time.Hour, &out)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestStore_ReplaceAndGet(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	err := store.Replace(ctx, "scope", map[string]interface{}{
		"scope:a": payload{Value: "first"},
	})
	require.NoError(t, err)

	var out payload
	hit, err := store.Get(ctx, "scope:a", time.Hour, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "first", out.Value)
}

func TestStore_StaleEntryIsAMiss(t *testing.T) {
	store, now := setupStore(t)
	ctx := context.Background()

	err := store.Replace(ctx, "scope", map[string]interface{}{
		"scope:a": payload{Value: "old"},
	})
	require.NoError(t, err)

	*now = now.Add(3*time.Hour + time.Minute)

	var out payload
	hit, err := store.Get(ctx, "scope:a", 3*time.Hour, &out)
	assert.NoError(t, err)
	assert.False(t, hit)

	// The same entry is still fresh under a longer window.
	hit, err = store.Get(ctx, "scope:a", 6*time.Hour, &out)
	assert.NoError(t, err)
	assert.True(t, hit)
}

func TestStore_ReplaceWipesWholeScope(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	err := store.Replace(ctx, "scope", map[string]interface{}{
		"scope:a": payload{Value: "a"},
		"scope:b": payload{Value: "b"},
	})
	require.NoError(t, err)

	err = store.Replace(ctx, "scope", map[string]interface{}{
		"scope:c": payload{Value: "c"},
	})
	require.NoError(t, err)

	var out payload
	hit, err := store.Get(ctx, "scope:a", time.Hour, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = store.Get(ctx, "scope:b", time.Hour, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = store.Get(ctx, "scope:c", time.Hour, &out)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestStore_ReplaceWithNoEntriesClearsScope(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	err := store.Replace(ctx, "scope", map[string]interface{}{
		"scope:a": payload{Value: "a"},
	})
	require.NoError(t, err)

	err = store.Replace(ctx, "scope", nil)
	require.NoError(t, err)

	var out payload
	hit, err := store.Get(ctx, "scope:a", time.Hour, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStore_FreshKeys(t *testing.T) {
	store, now := setupStore(t)
	ctx := context.Background()

	err := store.Replace(ctx, "old", map[string]interface{}{
		"old:a": payload{Value: "a"},
	})
	require.NoError(t, err)

	*now = now.Add(4 * time.Hour)

	err = store.Replace(ctx, "new", map[string]interface{}{
		"new:a": payload{Value: "a"},
		"new:b": payload{Value: "b"},
	})
	require.NoError(t, err)

	fresh, err := store.FreshKeys(ctx, "new:*", 3*time.Hour)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	fresh, err = store.FreshKeys(ctx, "old:*", 3*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestStore_FetchedAt(t *testing.T) {
	store, now := setupStore(t)
	ctx := context.Background()

	err := store.Replace(ctx, "scope", map[string]interface{}{
		"scope:a": payload{Value: "a"},
	})
	require.NoError(t, err)

	fetchedAt, err := store.FetchedAt(ctx, "scope:a")
	require.NoError(t, err)
	assert.Equal(t, now.UTC(), fetchedAt)

	fetchedAt, err = store.FetchedAt(ctx, "scope:missing")
	require.NoError(t, err)
	assert.True(t, fetchedAt.IsZero())
}
