// Package db opens the preference store selected by configuration.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/config"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
	pg "github.com/Brze0x/sixties-life-bot/internal/infra/db/postgres"
	"github.com/Brze0x/sixties-life-bot/internal/infra/db/sqlite"
)

// Store bundles the repository, its transaction manager and the closer of the
// underlying connection.
type Store struct {
	Prefs repository.PreferenceRepository
	TM    repository.TransactionManager
	Close func()
}

// Open connects to SQLite or Postgres. Postgres migrations run first. Pool
// stats are reported until ctx is done.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zerolog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		conn, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		go sqlite.ReportPoolStats(ctx, conn, 30*time.Second)
		logger.Info().Str("path", cfg.Path).Msg("using sqlite preference store")
		return &Store{
			Prefs: sqlite.NewPreferenceRepo(conn),
			TM:    sqlite.NewTxManager(conn),
			Close: func() { _ = conn.Close() },
		}, nil

	case config.DriverPostgres:
		if err := pg.Migrate(cfg.URL); err != nil {
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		pool, err := pg.NewPgxPool(ctx, cfg.URL, cfg.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		go pg.ReportPoolStats(ctx, pool, 30*time.Second)
		logger.Info().Int32("max_conns", cfg.MaxConns).Msg("using postgres preference store")
		return &Store{
			Prefs: pg.NewPostgresPreferenceRepo(pool),
			TM:    pg.NewTxManager(pool),
			Close: pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("database driver %q is not supported", cfg.Driver)
	}
}
