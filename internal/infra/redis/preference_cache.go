package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

var (
	_ repository.PreferenceRepository       = (*preferenceRepoCacheDecorator)(nil)
	_ repository.PreferenceCacheInvalidator = (*preferenceRepoCacheDecorator)(nil)
)

type preferenceRepoCacheDecorator struct {
	inner repository.PreferenceRepository
	cache RedisClient
	ttl   time.Duration
}

func NewPreferenceRepoCacheDecorator(inner repository.PreferenceRepository, cache RedisClient, ttl time.Duration) repository.PreferenceRepository {
	return &preferenceRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func PreferenceKey(userID int64) string {
	return fmt.Sprintf("pref:%d", userID)
}

func (d *preferenceRepoCacheDecorator) Get(ctx context.Context, tx repository.Tx, userID int64) (*model.Preference, error) {
	key := PreferenceKey(userID)
	// Reads inside a transaction must see the transaction's own writes.
	if tx == nil {
		if val, err := d.cache.Get(ctx, key); err == nil {
			var p model.Preference
			if json.Unmarshal([]byte(val), &p) == nil {
				metrics.IncCacheRequest("preference", "hit")
				return &p, nil
			}
		}
		metrics.IncCacheRequest("preference", "miss")
	}

	p, err := d.inner.Get(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		if b, err := json.Marshal(p); err == nil {
			_ = d.cache.Set(ctx, key, b, d.ttl)
		}
	}
	return p, nil
}

// Upsert drops the cached entry right away only outside a transaction. Inside
// one, the old row stays visible to other readers until commit, so the caller
// calls Invalidate after WithTx returns.
func (d *preferenceRepoCacheDecorator) Upsert(ctx context.Context, tx repository.Tx, p *model.Preference) error {
	if err := d.inner.Upsert(ctx, tx, p); err != nil {
		return err
	}
	if tx == nil {
		_ = d.cache.Del(ctx, PreferenceKey(p.UserID))
	}
	return nil
}

func (d *preferenceRepoCacheDecorator) Invalidate(ctx context.Context, userID int64) error {
	return d.cache.Del(ctx, PreferenceKey(userID))
}

func (d *preferenceRepoCacheDecorator) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return d.inner.Count(ctx, tx)
}
