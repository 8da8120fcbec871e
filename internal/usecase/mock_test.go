//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/adapter"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
)

// ---- Mock NewsSource ----

type MockNewsSource struct {
	mu    sync.Mutex
	Calls []string

	FetchFunc func(ctx context.Context, source, category string) (model.Feed, error)
}

var _ adapter.NewsSource = (*MockNewsSource)(nil)

func (m *MockNewsSource) Fetch(ctx context.Context, source, category string) (model.Feed, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, source+"/"+category)
	m.mu.Unlock()
	return m.FetchFunc(ctx, source, category)
}

func feedOf(category string, titles ...string) model.Feed {
	items := make([]model.NewsItem, len(titles))
	for i, title := range titles {
		items[i] = model.NewsItem{Date: "01.01.2024", Title: title, Link: "https://example.org/" + title}
	}
	return model.Feed{category: items}
}

// ---- In-memory PreferenceRepository ----

type MockPreferenceRepo struct {
	mu      sync.Mutex
	store   map[int64]model.Preference
	Upserts int

	GetErr    error
	UpsertErr error
}

var _ repository.PreferenceRepository = (*MockPreferenceRepo)(nil)

func NewMockPreferenceRepo() *MockPreferenceRepo {
	return &MockPreferenceRepo{store: map[int64]model.Preference{}}
}

func (m *MockPreferenceRepo) Get(ctx context.Context, tx repository.Tx, userID int64) (*model.Preference, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *MockPreferenceRepo) Upsert(ctx context.Context, tx repository.Tx, p *model.Preference) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[p.UserID] = *p
	m.Upserts++
	return nil
}

func (m *MockPreferenceRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.store), nil
}

// invalidatingRepo records Invalidate calls and whether the surrounding
// transaction had committed by then.
type invalidatingRepo struct {
	*MockPreferenceRepo
	committed   *bool
	invalidated []int64
	afterCommit bool
}

var _ repository.PreferenceCacheInvalidator = (*invalidatingRepo)(nil)

func (r *invalidatingRepo) Invalidate(ctx context.Context, userID int64) error {
	r.invalidated = append(r.invalidated, userID)
	r.afterCommit = *r.committed
	return nil
}

// ---- Mock TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTx runs fn immediately without a real transaction unless WithTxFunc is set.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(ctx, nil)
}

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
