package sched

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
	"github.com/Brze0x/sixties-life-bot/internal/infra/worker"
)

// Refresher reloads one cached category; *redis.NewsCache implements it.
type Refresher interface {
	Refresh(ctx context.Context, source, category string) error
}

// NewsWarmer refreshes the cache of every menu category so button presses hit Redis.
type NewsWarmer struct {
	catalog *model.Catalog
	cache   Refresher
	pool    *worker.Pool
	log     *zerolog.Logger
}

func NewNewsWarmer(catalog *model.Catalog, cache Refresher, pool *worker.Pool, logger *zerolog.Logger) *NewsWarmer {
	l := logger.With().Str("component", "NewsWarmer").Logger()
	return &NewsWarmer{catalog: catalog, cache: cache, pool: pool, log: &l}
}

// Run fans the refreshes out to the pool and waits for all of them.
// It returns the joined refresh errors.
func (w *NewsWarmer) Run(ctx context.Context) error {
	start := time.Now()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		n    int
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, src := range w.catalog.Sources() {
		for _, cat := range src.Categories {
			source, category := src.Code, cat.Code
			wg.Add(1)
			n++
			// Refresh runs under this run's ctx so the scheduler timeout applies.
			err := w.pool.SubmitWait(ctx, func(context.Context) error {
				defer wg.Done()
				if err := w.cache.Refresh(ctx, source, category); err != nil {
					metrics.IncWarmJob("failed")
					err = fmt.Errorf("warm %s/%s: %w", source, category, err)
					record(err)
					return err
				}
				metrics.IncWarmJob("completed")
				return nil
			})
			if err != nil {
				wg.Done()
				metrics.IncWarmJob("dropped")
				record(fmt.Errorf("submit %s/%s: %w", source, category, err))
			}
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		record(ctx.Err())
	}

	mu.Lock()
	defer mu.Unlock()
	w.log.Info().Int("categories", n).Int("failed", len(errs)).Dur("duration", time.Since(start)).Msg("cache warm finished")
	return errors.Join(errs...)
}
