package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
)

var _ repository.PreferenceRepository = (*PostgresPreferenceRepo)(nil)

type PostgresPreferenceRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPreferenceRepo(pool *pgxpool.Pool) *PostgresPreferenceRepo {
	return &PostgresPreferenceRepo{pool: pool}
}

func (r *PostgresPreferenceRepo) Get(ctx context.Context, tx repository.Tx, userID int64) (*model.Preference, error) {
	const q = `SELECT user_id, pagination_status, updated_at FROM settings WHERE user_id=$1;`
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var (
		p      model.Preference
		status string
	)
	if err := exec.QueryRow(ctx, q, userID).Scan(&p.UserID, &status, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select preference: %w", err)
	}
	if p.Status, err = model.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("stored status %q: %w", status, err)
	}
	return &p, nil
}

func (r *PostgresPreferenceRepo) Upsert(ctx context.Context, tx repository.Tx, p *model.Preference) error {
	const q = `
INSERT INTO settings (user_id, pagination_status, updated_at)
VALUES ($1, $2, COALESCE($3, NOW()))
ON CONFLICT (user_id) DO UPDATE SET
  pagination_status = EXCLUDED.pagination_status,
  updated_at = EXCLUDED.updated_at;`
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	var updated interface{}
	if !p.UpdatedAt.IsZero() {
		updated = p.UpdatedAt
	}
	if _, err := exec.Exec(ctx, q, p.UserID, string(p.Status), updated); err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

func (r *PostgresPreferenceRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM settings;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count preferences: %w", err)
	}
	return n, nil
}
