package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

// ReportPoolStats publishes pool gauges every interval until ctx is done.
func ReportPoolStats(ctx context.Context, pool *pgxpool.Pool, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		s := pool.Stat()
		metrics.SetStoreConns("postgres", int(s.IdleConns()), int(s.AcquiredConns()))
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
