package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

// ReportPoolStats publishes connection gauges every interval until ctx is done.
func ReportPoolStats(ctx context.Context, db *sql.DB, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		s := db.Stats()
		metrics.SetStoreConns("sqlite", s.Idle, s.InUse)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
