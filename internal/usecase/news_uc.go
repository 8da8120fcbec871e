package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/adapter"
	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

// Compile-time check
var _ NewsUseCase = (*newsUC)(nil)

// PageView is one rendered page of a category: the item text and its keyboard.
type PageView struct {
	Source    string               `json:"source"`
	Category  string               `json:"category"`
	Text      string               `json:"text"`
	Page      int                  `json:"page"`
	PageCount int                  `json:"page_count"`
	Keyboard  *pagination.Keyboard `json:"keyboard"`
}

// NewsUseCase resolves categories through the catalog and renders their items.
type NewsUseCase interface {
	// Feed returns the items of category as served (newest first).
	Feed(ctx context.Context, category string) (source string, items []model.NewsItem, err error)
	// Page renders one item per page; out-of-range pages are clamped.
	Page(ctx context.Context, category string, page int) (*PageView, error)
	// All returns every item formatted, oldest first.
	All(ctx context.Context, category string) (source string, texts []string, err error)
	Catalog() *model.Catalog
}

type newsUC struct {
	news    adapter.NewsSource
	catalog *model.Catalog
	labels  pagination.Labels
	back    pagination.Button
	log     *zerolog.Logger
}

// NewNewsUseCase wires the news source. back is appended under every page's
// navigation row.
func NewNewsUseCase(news adapter.NewsSource, catalog *model.Catalog, labels pagination.Labels, back pagination.Button, logger *zerolog.Logger) *newsUC {
	return &newsUC{
		news:    news,
		catalog: catalog,
		labels:  labels,
		back:    back,
		log:     logger,
	}
}

func (u *newsUC) Catalog() *model.Catalog { return u.catalog }

func (u *newsUC) Feed(ctx context.Context, category string) (string, []model.NewsItem, error) {
	defer logging.TraceDuration(u.log, "NewsUC.Feed")()

	source, ok := u.catalog.SourceOf(category)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	feed, err := u.news.Fetch(ctx, source, category)
	if err != nil {
		return source, nil, err
	}
	items := feed.Items(category)
	if len(items) == 0 {
		return source, nil, domain.ErrEmptyFeed
	}
	return source, items, nil
}

func (u *newsUC) Page(ctx context.Context, category string, page int) (*PageView, error) {
	defer logging.TraceDuration(u.log, "NewsUC.Page")()

	source, items, err := u.Feed(ctx, category)
	if err != nil {
		return nil, err
	}

	cb := pagination.Callback{Kind: pagination.KindPage, Page: len(items), Source: source, Category: category}
	// The last page has the longest token; if it fits, every page does.
	if _, err := cb.Encode(); err != nil {
		return nil, fmt.Errorf("encode navigation for %s/%s: %w", source, category, err)
	}

	b := pagination.New(len(items), page, pagination.WithCallback(cb), pagination.WithLabels(u.labels))
	if u.back.Text != "" {
		b.AddAfter(u.back)
	}
	metrics.IncPageRendered(source)

	return &PageView{
		Source:    source,
		Category:  category,
		Text:      items[b.CurrentPage()-1].Format(),
		Page:      b.CurrentPage(),
		PageCount: b.PageCount(),
		Keyboard:  b.Build(),
	}, nil
}

func (u *newsUC) All(ctx context.Context, category string) (string, []string, error) {
	defer logging.TraceDuration(u.log, "NewsUC.All")()

	source, items, err := u.Feed(ctx, category)
	if err != nil {
		return source, nil, err
	}
	texts := model.FormatAll(items)
	for i, j := 0, len(texts)-1; i < j; i, j = i+1, j-1 {
		texts[i], texts[j] = texts[j], texts[i]
	}
	metrics.IncFullListRendered(source)
	return source, texts, nil
}
