package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
)

var _ repository.PreferenceRepository = (*PreferenceRepo)(nil)

type PreferenceRepo struct {
	db *sql.DB
}

func NewPreferenceRepo(db *sql.DB) *PreferenceRepo {
	return &PreferenceRepo{db: db}
}

func (r *PreferenceRepo) Get(ctx context.Context, tx repository.Tx, userID int64) (*model.Preference, error) {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return nil, err
	}
	var (
		p         model.Preference
		status    string
		updatedAt string
	)
	err = exec.QueryRowContext(ctx,
		`SELECT user_id, pagination_status, updated_at FROM settings WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &status, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select preference: %w", err)
	}
	if p.Status, err = model.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("stored status %q: %w", status, err)
	}
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &p, nil
}

func (r *PreferenceRepo) Upsert(ctx context.Context, tx repository.Tx, p *model.Preference) error {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return err
	}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err = exec.ExecContext(ctx, `
INSERT INTO settings (user_id, pagination_status, updated_at) VALUES (?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  pagination_status = excluded.pagination_status,
  updated_at = excluded.updated_at`,
		p.UserID, string(p.Status), updated.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

func (r *PreferenceRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count preferences: %w", err)
	}
	return n, nil
}
