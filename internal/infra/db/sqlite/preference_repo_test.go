//go:build !integration

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPreferenceRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("Get should return ErrNotFound for an unknown user", func(t *testing.T) {
		repo := NewPreferenceRepo(openTestDB(t))
		if _, err := repo.Get(ctx, repository.NoTX, 1); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Upsert should keep a single row per user", func(t *testing.T) {
		repo := NewPreferenceRepo(openTestDB(t))
		p, _ := model.NewPreference(42, model.PaginationOff)
		if err := repo.Upsert(ctx, repository.NoTX, p); err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}
		p.Status = model.PaginationOn
		if err := repo.Upsert(ctx, repository.NoTX, p); err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}

		got, err := repo.Get(ctx, repository.NoTX, 42)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Status != model.PaginationOn {
			t.Errorf("expected pagination_on, got %s", got.Status)
		}
		if got.UpdatedAt.IsZero() {
			t.Error("expected updated_at to round trip")
		}
		n, err := repo.Count(ctx, repository.NoTX)
		if err != nil || n != 1 {
			t.Errorf("expected exactly one row, got %d (%v)", n, err)
		}
	})

	t.Run("WithTx should roll back on error", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPreferenceRepo(db)
		tm := NewTxManager(db)
		boom := errors.New("boom")

		err := tm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			p, _ := model.NewPreference(7, model.PaginationOn)
			if err := repo.Upsert(ctx, tx, p); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if _, err := repo.Get(ctx, repository.NoTX, 7); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected the write to be rolled back, got %v", err)
		}
	})

	t.Run("should reject foreign transaction handles", func(t *testing.T) {
		repo := NewPreferenceRepo(openTestDB(t))
		if _, err := repo.Get(ctx, "not a tx", 1); !errors.Is(err, domain.ErrInvalidExecContext) {
			t.Errorf("expected ErrInvalidExecContext, got %v", err)
		}
	})
}

func TestOpen_CreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")
	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
