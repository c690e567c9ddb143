package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const homeFeedKey = "dreamwall:home:feed"

// HomeCache keeps the home feed in Redis. Failures are logged and treated
// as misses.
type HomeCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewHomeCache(rdb *redis.Client, ttl time.Duration) *HomeCache {
	return &HomeCache{rdb: rdb, ttl: ttl}
}

func (c *HomeCache) GetFeed(ctx context.Context) (*transfer.HomeFeed, bool) {
	data, err := c.rdb.Get(ctx, homeFeedKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("read home feed cache", zap.Error(err))
		}
		return nil, false
	}

	var feed transfer.HomeFeed
	if err := sonic.Unmarshal(data, &feed); err != nil {
		logger.Warn("decode home feed cache", zap.Error(err))
		return nil, false
	}
	return &feed, true
}

func (c *HomeCache) SetFeed(ctx context.Context, feed *transfer.HomeFeed) {
	payload, err := sonic.Marshal(feed)
	if err != nil {
		logger.Warn("encode home feed cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, homeFeedKey, payload, c.ttl).Err(); err != nil {
		logger.Warn("write home feed cache", zap.Error(err))
	}
}

// Invalidate drops the cached feed so the next read rebuilds it.
func (c *HomeCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, homeFeedKey).Err(); err != nil {
		logger.Warn("invalidate home feed cache", zap.Error(err))
	}
}
