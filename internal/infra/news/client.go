package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/adapter"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

var _ adapter.NewsSource = (*Client)(nil)

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// Client talks to the sixtieslife news API: GET {base}/{source}/{category}.
type Client struct {
	baseURL string
	client  *http.Client
	log     *zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *Client {
	l := logger.With().Str("component", "news_client").Logger()
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     &l,
	}
}

// Fetch implements adapter.NewsSource. The response body is
// {"<category>": [[date, title, link], ...]}; rows with fewer than three fields are skipped.
func (c *Client) Fetch(ctx context.Context, source, category string) (feed model.Feed, err error) {
	start := time.Now()
	defer func() { metrics.ObserveNewsFetch(source, time.Since(start), err) }()

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(source), url.PathEscape(category))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s/%s returned status %d", domain.ErrFetch, source, category, resp.StatusCode)
	}

	var raw map[string][][]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrFetch, err)
	}

	feed = make(model.Feed, len(raw))
	for cat, rows := range raw {
		items := make([]model.NewsItem, 0, len(rows))
		for _, row := range rows {
			if len(row) < 3 {
				c.log.Debug().Str("source", source).Str("category", cat).Int("fields", len(row)).Msg("skipping short news row")
				continue
			}
			items = append(items, model.NewsItem{
				Date:  field(row[0]),
				Title: field(row[1]),
				Link:  field(row[2]),
			})
		}
		feed[cat] = items
	}
	c.log.Debug().Str("source", source).Str("category", category).Int("items", len(feed.Items(category))).Msg("news fetched")
	return feed, nil
}

func field(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
