package cache_test

import (
	"context"
	"testing"
	"time"

	"roomdesk/infras/otel/mocks"
	"roomdesk/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRoom struct {
	ID         string `json:"id"`
	RoomNumber string `json:"roomNumber"`
}

func newCache(t *testing.T) (*miniredis.Miniredis, cache.RedisCache) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return server, cache.NewRedisCache(client, mocks.NewOtel())
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	server, redisCache := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "room:get:1", cachedRoom{ID: "1", RoomNumber: "101"}, 30))
	require.NoError(t, redisCache.Save(ctx, "plain", "value", 30))

	var room cachedRoom
	require.NoError(t, redisCache.Get(ctx, "room:get:1", &room))
	assert.Equal(t, "101", room.RoomNumber)

	var plain string
	require.NoError(t, redisCache.Get(ctx, "plain", &plain))
	assert.Equal(t, "value", plain)

	server.FastForward(31 * time.Second)

	err := redisCache.Get(ctx, "room:get:1", &room)
	assert.True(t, cache.IsMiss(err))
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	server, redisCache := newCache(t)
	ctx := context.Background()

	for _, key := range []string{"room:gets:a", "room:gets:b", "room:get:1"} {
		require.NoError(t, redisCache.Save(ctx, key, cachedRoom{ID: key}, 60))
	}

	require.NoError(t, redisCache.Clear(ctx, "room:gets:*"))
	assert.False(t, server.Exists("room:gets:a"))
	assert.False(t, server.Exists("room:gets:b"))
	assert.True(t, server.Exists("room:get:1"))

	require.NoError(t, redisCache.Delete(ctx, "room:get:1"))
	assert.False(t, server.Exists("room:get:1"))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	server, redisCache := newCache(t)
	server.Close()

	var room cachedRoom
	err := redisCache.Get(context.Background(), "room:get:1", &room)

	assert.Error(t, err)
	assert.False(t, cache.IsMiss(err))
}

func TestNoopCache(t *testing.T) {
	noop := cache.NewRedisCache(nil, mocks.NewOtel())
	ctx := context.Background()

	assert.NoError(t, noop.Save(ctx, "k", "v", 10))
	assert.True(t, cache.IsMiss(noop.Get(ctx, "k", new(string))))
	assert.NoError(t, noop.Delete(ctx, "k"))
	assert.NoError(t, noop.Clear(ctx, "k*"))
}
