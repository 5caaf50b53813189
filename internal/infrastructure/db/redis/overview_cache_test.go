package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*OverviewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewOverviewCache(client, ttl), mr
}

func TestOverviewCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	text, ok, err := cache.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestOverviewCache_SetThenGet(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "1", "- Quantum basics"))

	text, ok, err := cache.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "- Quantum basics", text)
	assert.Equal(t, time.Hour, mr.TTL("overview:1"))
}

func TestOverviewCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "1", "- Quantum basics"))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOverviewCache_ServerDown(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, _, err := cache.Get(context.Background(), "1")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), Config{Addr: addr, Timeout: 100 * time.Millisecond})
	assert.Error(t, err)

	_, err = Connect(context.Background(), Config{})
	assert.Error(t, err)
}
