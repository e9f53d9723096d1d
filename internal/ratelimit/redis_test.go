package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_BlocksAfterLimit(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := s.Hit(ctx, "auth:10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d", i)
		assert.Equal(t, 3-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := s.Hit(ctx, "auth:10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	got, err := mr.Get(keyPrefix + "auth:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "4", got)
}

func TestRedisStore_WindowStartsOnFirstHit(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()
	key := keyPrefix + "api:10.0.0.1"

	res, err := s.Hit(ctx, "api:10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(key))
	assert.WithinDuration(t, time.Now().Add(time.Minute), res.ResetAt, 2*time.Second)

	mr.FastForward(20 * time.Second)

	res, err = s.Hit(ctx, "api:10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 40*time.Second, mr.TTL(key), "a later hit must not extend the window")
	assert.WithinDuration(t, time.Now().Add(40*time.Second), res.ResetAt, 2*time.Second)
	assert.Equal(t, 3, res.Remaining)
}

func TestRedisStore_CountResetsWhenWindowExpires(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := s.Hit(ctx, "auth:10.0.0.2", 2, time.Minute)
		require.NoError(t, err)
	}
	res, err := s.Hit(ctx, "auth:10.0.0.2", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	mr.FastForward(time.Minute + time.Second)

	res, err = s.Hit(ctx, "auth:10.0.0.2", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"auth:10.0.0.2"))
}

func TestRedisStore_KeysAreIndependent(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, err := s.Hit(ctx, "auth:10.0.0.3", 1, time.Minute)
	require.NoError(t, err)

	res, err := s.Hit(ctx, "auth:10.0.0.4", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisStore_ReportsUnreachableServer(t *testing.T) {
	s, mr := newTestRedisStore(t)
	mr.Close()

	_, err := s.Hit(context.Background(), "auth:10.0.0.5", 1, time.Minute)
	assert.ErrorContains(t, err, "rate limit hit auth:10.0.0.5")
}
