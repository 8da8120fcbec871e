//go:build !integration

package db

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/config"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
)

func TestOpen_SQLite(t *testing.T) {
	logger := zerolog.New(io.Discard)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.db")

	store, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverSQLite, Path: path}, &logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	p, _ := model.NewPreference(5, model.PaginationOn)
	err = store.TM.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		return store.Prefs.Upsert(ctx, tx, p)
	})
	if err != nil {
		t.Fatalf("Upsert in tx: %v", err)
	}
	n, err := store.Prefs.Count(ctx, repository.NoTX)
	if err != nil || n != 1 {
		t.Errorf("expected one stored preference, got %d (%v)", n, err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	logger := zerolog.New(io.Discard)
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql"}, &logger); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}
