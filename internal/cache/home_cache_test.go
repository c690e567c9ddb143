package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*HomeCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewHomeCache(rdb, ttl), mr
}

func TestHomeCacheRoundTrip(t *testing.T) {
	c, mr := newCache(t, 30*time.Second)
	ctx := context.Background()

	_, ok := c.GetFeed(ctx)
	assert.False(t, ok)

	feed := &transfer.HomeFeed{
		FeaturedPosts: []models.Post{{ID: 1, Title: "夢", LuckyNumber: "007"}},
		TopLikedPosts: []models.Post{},
	}
	c.SetFeed(ctx, feed)

	got, ok := c.GetFeed(ctx)
	require.True(t, ok)
	require.Len(t, got.FeaturedPosts, 1)
	assert.Equal(t, "夢", got.FeaturedPosts[0].Title)
	assert.Equal(t, "007", got.FeaturedPosts[0].LuckyNumber)

	mr.FastForward(31 * time.Second)
	_, ok = c.GetFeed(ctx)
	assert.False(t, ok)
}

func TestHomeCacheInvalidate(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	c.SetFeed(ctx, &transfer.HomeFeed{})
	c.Invalidate(ctx)
	_, ok := c.GetFeed(ctx)
	assert.False(t, ok)
}

func TestHomeCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	require.NoError(t, mr.Set(homeFeedKey, "{not json"))

	_, ok := c.GetFeed(context.Background())
	assert.False(t, ok)
}

func TestHomeCacheRedisDownIsMiss(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	mr.Close()

	c.SetFeed(context.Background(), &transfer.HomeFeed{})
	_, ok := c.GetFeed(context.Background())
	assert.False(t, ok)
}
