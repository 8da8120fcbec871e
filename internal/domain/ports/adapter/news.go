package adapter

import (
	"context"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
)

// NewsSource fetches one category of one source. Failures wrap domain.ErrFetch.
type NewsSource interface {
	Fetch(ctx context.Context, source, category string) (model.Feed, error)
}
