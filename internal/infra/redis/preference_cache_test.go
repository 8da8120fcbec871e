//go:build !integration

package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
)

func TestPreferenceRepoCacheDecorator(t *testing.T) {
	ctx := context.Background()

	t.Run("Get should hit the inner repo once and then the cache", func(t *testing.T) {
		calls := 0
		inner := &mockInnerPreferenceRepo{
			GetFunc: func(ctx context.Context, tx repository.Tx, userID int64) (*model.Preference, error) {
				calls++
				return &model.Preference{UserID: userID, Status: model.PaginationOn}, nil
			},
		}
		decorator := NewPreferenceRepoCacheDecorator(inner, newMockRedis(), time.Hour)

		for i := 0; i < 2; i++ {
			p, err := decorator.Get(ctx, nil, 77)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if p.Status != model.PaginationOn {
				t.Errorf("expected pagination_on, got %s", p.Status)
			}
		}
		if calls != 1 {
			t.Errorf("expected one inner call, got %d", calls)
		}
	})

	t.Run("Get should not cache not-found", func(t *testing.T) {
		rdb := newMockRedis()
		inner := &mockInnerPreferenceRepo{
			GetFunc: func(ctx context.Context, tx repository.Tx, userID int64) (*model.Preference, error) {
				return nil, domain.ErrNotFound
			},
		}
		decorator := NewPreferenceRepoCacheDecorator(inner, rdb, time.Hour)
		if _, err := decorator.Get(ctx, nil, 5); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(rdb.data) != 0 {
			t.Errorf("expected empty cache, got %v", rdb.data)
		}
	})

	t.Run("Upsert outside a transaction should invalidate at once", func(t *testing.T) {
		var deleted []string
		rdb := newMockRedis()
		rdb.DelFunc = func(ctx context.Context, keys ...string) error {
			deleted = append(deleted, keys...)
			return nil
		}
		inner := &mockInnerPreferenceRepo{
			UpsertFunc: func(ctx context.Context, tx repository.Tx, p *model.Preference) error { return nil },
		}
		decorator := NewPreferenceRepoCacheDecorator(inner, rdb, time.Hour)

		if err := decorator.Upsert(ctx, nil, &model.Preference{UserID: 9, Status: model.PaginationOff}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(deleted) != 1 || deleted[0] != "pref:9" {
			t.Errorf("expected pref:9 to be invalidated once, got %v", deleted)
		}
	})

	t.Run("Upsert inside a transaction should leave invalidation to the caller", func(t *testing.T) {
		var deleted []string
		rdb := newMockRedis()
		rdb.DelFunc = func(ctx context.Context, keys ...string) error {
			deleted = append(deleted, keys...)
			return nil
		}
		inner := &mockInnerPreferenceRepo{
			UpsertFunc: func(ctx context.Context, tx repository.Tx, p *model.Preference) error { return nil },
		}
		decorator := NewPreferenceRepoCacheDecorator(inner, rdb, time.Hour)

		tx := struct{ name string }{"tx"}
		if err := decorator.Upsert(ctx, tx, &model.Preference{UserID: 9, Status: model.PaginationOn}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(deleted) != 0 {
			t.Fatalf("expected no invalidation before commit, got %v", deleted)
		}

		inv, ok := decorator.(repository.PreferenceCacheInvalidator)
		if !ok {
			t.Fatal("expected the decorator to expose Invalidate")
		}
		if err := inv.Invalidate(ctx, 9); err != nil {
			t.Fatalf("Invalidate failed: %v", err)
		}
		if len(deleted) != 1 || deleted[0] != "pref:9" {
			t.Errorf("expected pref:9 to be invalidated, got %v", deleted)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	counts := map[string]int64{}
	expired := 0
	rdb := &mockRedisClient{
		IncrFunc: func(ctx context.Context, key string) (int64, error) {
			counts[key]++
			return counts[key], nil
		},
		ExpireFunc: func(ctx context.Context, key string, exp time.Duration) error {
			expired++
			return nil
		},
	}
	rl := NewRateLimiter(rdb)
	key := UserCommandKey(1, "callback")
	if key != "rate_limit:1:callback" {
		t.Fatalf("unexpected key %q", key)
	}

	for i := 1; i <= 3; i++ {
		ok, err := rl.Allow(ctx, key, 2, time.Minute)
		if err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
		if want := i <= 2; ok != want {
			t.Errorf("hit %d: expected allowed=%v, got %v", i, want, ok)
		}
	}
	if expired != 1 {
		t.Errorf("expected the window to be set once, got %d", expired)
	}
}
