package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

// Compile-time check
var _ PreferenceUseCase = (*preferenceUC)(nil)

// PreferenceUseCase reads and writes the per-user pagination setting.
type PreferenceUseCase interface {
	// Status returns the stored status; users without a row read as off.
	Status(ctx context.Context, userID int64) (model.PaginationStatus, error)
	Set(ctx context.Context, userID int64, status model.PaginationStatus) error
	// Init resets the user to the full-list view, as /start does.
	Init(ctx context.Context, userID int64) error
	Count(ctx context.Context) (int, error)
}

type preferenceUC struct {
	prefs repository.PreferenceRepository
	tm    repository.TransactionManager
	log   *zerolog.Logger
}

func NewPreferenceUseCase(prefs repository.PreferenceRepository, tm repository.TransactionManager, logger *zerolog.Logger) *preferenceUC {
	return &preferenceUC{
		prefs: prefs,
		tm:    tm,
		log:   logger,
	}
}

func (u *preferenceUC) Status(ctx context.Context, userID int64) (model.PaginationStatus, error) {
	defer logging.TraceDuration(u.log, "PreferenceUC.Status")()

	p, err := u.prefs.Get(ctx, repository.NoTX, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return model.PaginationOff, nil
	}
	if err != nil {
		return "", err
	}
	return p.Status, nil
}

func (u *preferenceUC) Set(ctx context.Context, userID int64, status model.PaginationStatus) error {
	defer logging.TraceDuration(u.log, "PreferenceUC.Set")()

	next, err := model.NewPreference(userID, status)
	if err != nil {
		return err
	}
	written := false
	err = u.tm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		cur, err := u.prefs.Get(ctx, tx, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if cur != nil && cur.Status == status {
			return nil
		}
		if err := u.prefs.Upsert(ctx, tx, next); err != nil {
			return err
		}
		written = true
		return nil
	})
	if err != nil {
		u.log.Error().Err(err).Int64("tg_id", userID).Str("status", string(status)).Msg("failed to store preference")
		return err
	}
	if written {
		if inv, ok := u.prefs.(repository.PreferenceCacheInvalidator); ok {
			if err := inv.Invalidate(ctx, userID); err != nil {
				u.log.Warn().Err(err).Int64("tg_id", userID).Msg("failed to invalidate cached preference")
			}
		}
		metrics.IncPreferenceUpdate(string(status))
	}
	return nil
}

func (u *preferenceUC) Init(ctx context.Context, userID int64) error {
	return u.Set(ctx, userID, model.PaginationOff)
}

func (u *preferenceUC) Count(ctx context.Context) (int, error) {
	return u.prefs.Count(ctx, repository.NoTX)
}
