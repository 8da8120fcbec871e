//go:build !integration

package sched

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/infra/worker"
)

type mockRefresher struct {
	mu        sync.Mutex
	calls     []string
	failOn    string
	deadlines int
}

func (m *mockRefresher) Refresh(ctx context.Context, source, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, source+"/"+category)
	if _, ok := ctx.Deadline(); ok {
		m.deadlines++
	}
	if category == m.failOn {
		return errors.New("upstream down")
	}
	return nil
}

func TestNewsWarmer_RefreshesEveryMenuCategory(t *testing.T) {
	logger := zerolog.New(io.Discard)
	pool := worker.NewPool(2, &logger)
	pool.Start(context.Background())
	defer pool.Stop()

	ref := &mockRefresher{failOn: "rmarket"}
	w := NewNewsWarmer(model.DefaultCatalog(), ref, pool, &logger)

	err := w.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "cdi/rmarket") {
		t.Errorf("expected the failed category in the error, got %v", err)
	}

	sort.Strings(ref.calls)
	if len(ref.calls) != 10 {
		t.Fatalf("expected 10 menu categories to be refreshed, got %d: %v", len(ref.calls), ref.calls)
	}
	for _, c := range ref.calls {
		if strings.HasPrefix(c, "pg/") {
			t.Errorf("source without menu categories should not be warmed: %s", c)
		}
	}
}

func TestNewsWarmer_StoppedPool(t *testing.T) {
	logger := zerolog.New(io.Discard)
	pool := worker.NewPool(1, &logger)
	pool.Stop()

	ref := &mockRefresher{}
	err := NewNewsWarmer(model.DefaultCatalog(), ref, pool, &logger).Run(context.Background())
	if !errors.Is(err, worker.ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}

func TestNewsWarmer_RefreshUsesRunDeadline(t *testing.T) {
	logger := zerolog.New(io.Discard)
	pool := worker.NewPool(2, &logger)
	pool.Start(context.Background())
	defer pool.Stop()

	ref := &mockRefresher{}
	w := NewNewsWarmer(model.DefaultCatalog(), ref, pool, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if ref.deadlines != len(ref.calls) || len(ref.calls) != 10 {
		t.Errorf("expected every refresh to carry the run deadline, got %d of %d", ref.deadlines, len(ref.calls))
	}
}
