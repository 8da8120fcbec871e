package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/adapter"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

var _ adapter.NewsSource = (*NewsCache)(nil)

const refillLockTTL = 15 * time.Second

// NewsCache is a read-through cache in front of a NewsSource. Concurrent
// misses on the same key are collapsed with a Redis lock; Redis failures fall
// through to the inner source.
type NewsCache struct {
	inner  adapter.NewsSource
	cache  RedisClient
	locker Locker
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewNewsCache(inner adapter.NewsSource, cache RedisClient, locker Locker, ttl time.Duration, logger *zerolog.Logger) *NewsCache {
	l := logger.With().Str("component", "news_cache").Logger()
	return &NewsCache{inner: inner, cache: cache, locker: locker, ttl: ttl, log: &l}
}

func NewsKey(source, category string) string {
	return fmt.Sprintf("news:%s:%s", source, category)
}

func (c *NewsCache) Fetch(ctx context.Context, source, category string) (model.Feed, error) {
	key := NewsKey(source, category)
	if feed, ok := c.lookup(ctx, key); ok {
		metrics.IncCacheRequest("news", "hit")
		return feed, nil
	}
	metrics.IncCacheRequest("news", "miss")

	lockKey := key + ":lock"
	token, err := c.locker.TryLock(ctx, lockKey, refillLockTTL)
	if err == nil {
		defer func() {
			if uerr := c.locker.Unlock(context.WithoutCancel(ctx), lockKey, token); uerr != nil {
				c.log.Warn().Err(uerr).Str("key", lockKey).Msg("failed to release refill lock")
			}
		}()
		// Someone may have refilled while we waited for the lock.
		if feed, ok := c.lookup(ctx, key); ok {
			return feed, nil
		}
	} else {
		c.log.Debug().Err(err).Str("key", key).Msg("refill lock not acquired, fetching directly")
		if feed, ok := c.lookup(ctx, key); ok {
			return feed, nil
		}
	}
	return c.fill(ctx, source, category)
}

// Refresh fetches from the inner source and overwrites the cached entry.
func (c *NewsCache) Refresh(ctx context.Context, source, category string) error {
	_, err := c.fill(ctx, source, category)
	return err
}

func (c *NewsCache) fill(ctx context.Context, source, category string) (model.Feed, error) {
	feed, err := c.inner.Fetch(ctx, source, category)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(feed)
	if err == nil {
		if err := c.cache.Set(ctx, NewsKey(source, category), b, c.ttl); err != nil {
			c.log.Warn().Err(err).Str("source", source).Str("category", category).Msg("failed to cache news")
		}
	}
	return feed, nil
}

func (c *NewsCache) lookup(ctx context.Context, key string) (model.Feed, bool) {
	val, err := c.cache.Get(ctx, key)
	if err != nil {
		if !IsMiss(err) {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		}
		return nil, false
	}
	var feed model.Feed
	if err := json.Unmarshal([]byte(val), &feed); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		return nil, false
	}
	return feed, true
}
