package repository

import (
	"context"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
)

// PreferenceRepository keeps at most one settings row per user.
type PreferenceRepository interface {
	// Get returns domain.ErrNotFound when the user has no row.
	Get(ctx context.Context, tx Tx, userID int64) (*model.Preference, error)
	Upsert(ctx context.Context, tx Tx, p *model.Preference) error
	Count(ctx context.Context, tx Tx) (int, error)
}

// PreferenceCacheInvalidator is implemented by caching repositories. Writes made
// inside a transaction are invalidated by the caller once the transaction commits.
type PreferenceCacheInvalidator interface {
	Invalidate(ctx context.Context, userID int64) error
}
