//go:build !integration

package redis

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
)

// mockRedisClient falls back to an in-memory map for any func left nil.
type mockRedisClient struct {
	mu   sync.Mutex
	data map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	SetNXFunc  func(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	IncrFunc   func(ctx context.Context, key string) (int64, error)
	ExpireFunc func(ctx context.Context, key string, expiration time.Duration) error
	DelFunc    func(ctx context.Context, keys ...string) error
}

func newMockRedis() *mockRedisClient { return &mockRedisClient{data: map[string]string{}} }

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

func (m *mockRedisClient) Ping(ctx context.Context) error { return nil }

func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = toString(value)
	return nil
}

func (m *mockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, expiration)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = toString(value)
	return true, nil
}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return m.IncrFunc(ctx, key)
}

func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, expiration)
	}
	return nil
}

func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mockRedisClient) DelIfEquals(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[key] == value {
		delete(m.data, key)
	}
	return nil
}

func (m *mockRedisClient) Close() error { return nil }

type mockNewsSource struct {
	FetchFunc func(ctx context.Context, source, category string) (model.Feed, error)
}

func (m *mockNewsSource) Fetch(ctx context.Context, source, category string) (model.Feed, error) {
	return m.FetchFunc(ctx, source, category)
}

type mockInnerPreferenceRepo struct {
	GetFunc    func(ctx context.Context, tx repository.Tx, userID int64) (*model.Preference, error)
	UpsertFunc func(ctx context.Context, tx repository.Tx, p *model.Preference) error
	CountFunc  func(ctx context.Context, tx repository.Tx) (int, error)
}

func (m *mockInnerPreferenceRepo) Get(ctx context.Context, tx repository.Tx, userID int64) (*model.Preference, error) {
	return m.GetFunc(ctx, tx, userID)
}
func (m *mockInnerPreferenceRepo) Upsert(ctx context.Context, tx repository.Tx, p *model.Preference) error {
	return m.UpsertFunc(ctx, tx, p)
}
func (m *mockInnerPreferenceRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return m.CountFunc(ctx, tx)
}
