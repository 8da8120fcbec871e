package application

import (
	"context"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/usecase"
)

// ---- small interfaces to decouple the facade from concrete usecase structs ----

type NewsUseCaseIface interface {
	Page(ctx context.Context, category string, page int) (*usecase.PageView, error)
	All(ctx context.Context, category string) (source string, texts []string, err error)
	Catalog() *model.Catalog
}

type PreferenceUseCaseIface interface {
	Status(ctx context.Context, userID int64) (model.PaginationStatus, error)
	Set(ctx context.Context, userID int64, status model.PaginationStatus) error
	Init(ctx context.Context, userID int64) error
}

// Translator is the subset of i18n.Translator the facade needs.
type Translator interface {
	T(key string, args ...interface{}) string
	Help() string
}
