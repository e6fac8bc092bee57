package cache

import (
	"context"
	"testing"

	"moodbrew-order-system/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client), mr
}

func sampleEntries() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{Rank: 1, UserID: "alice", DisplayName: "Alice", XP: 900, Points: 450, Level: 2},
		{Rank: 2, UserID: "bob", DisplayName: "Bob", XP: 400, Points: 200, Level: 1},
	}
}

func TestRedisCacheMissOnEmpty(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleEntries()))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].UserID)
	assert.Equal(t, int64(900), got[0].XP)
	assert.Equal(t, 2, got[1].Rank)
}

func TestRedisCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleEntries()))
	require.NoError(t, c.Invalidate(ctx))

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleEntries()))

	mr.FastForward(c.baseTTL * 2)

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
