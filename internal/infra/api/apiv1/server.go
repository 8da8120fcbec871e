// Package apiv1 is the read-only JSON API that previews what the bot renders.
package apiv1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
	"github.com/Brze0x/sixties-life-bot/internal/usecase"
)

// NewsPager is the subset of usecase.NewsUseCase the API needs.
type NewsPager interface {
	Page(ctx context.Context, category string, page int) (*usecase.PageView, error)
	Catalog() *model.Catalog
}

// PreferenceCounter reports how many users have a stored preference.
type PreferenceCounter interface {
	Count(ctx context.Context) (int, error)
}

type Server struct {
	news  NewsPager
	prefs PreferenceCounter
	log   *zerolog.Logger
}

// NewServer wires the handlers. prefs may be nil, which disables /stats.
func NewServer(news NewsPager, prefs PreferenceCounter, logger *zerolog.Logger) *Server {
	return &Server{news: news, prefs: prefs, log: logger}
}

// RegisterAPIV1 mounts the v1 routes under /api/v1 on r. apiKey signs the
// bearer tokens accepted by /stats.
func RegisterAPIV1(r chi.Router, s *Server, apiKey string) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sources", s.handleSources)
		r.Get("/news/{category}", s.handlePage)
		if s.prefs != nil {
			r.With(bearerAuth(NewTokenIssuer(apiKey), s.log)).Get("/stats", s.handleStats)
		}
	})
}

type categoryDTO struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

type sourceDTO struct {
	Code       string        `json:"code"`
	Title      string        `json:"title"`
	Categories []categoryDTO `json:"categories"`
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	sources := s.news.Catalog().Sources()
	items := make([]sourceDTO, 0, len(sources))
	for _, src := range sources {
		cats := make([]categoryDTO, 0, len(src.Categories))
		for _, c := range src.Categories {
			cats = append(cats, categoryDTO{Code: c.Code, Title: c.Title})
		}
		items = append(items, sourceDTO{Code: src.Code, Title: src.Title, Categories: cats})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handlePage serves GET /api/v1/news/{category}?page=N; page defaults to 1.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	page := 1
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
		page = n
	}

	view, err := s.news.Page(r.Context(), category, page)
	if err != nil {
		status := statusFor(err)
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			logging.With(r.Context(), s.log).Error().Err(err).Str("category", category).Msg("render page failed")
			// Upstream and driver details stay in the log.
			msg = strings.ToLower(http.StatusText(status))
		}
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	n, err := s.prefs.Count(r.Context())
	if err != nil {
		logging.With(r.Context(), s.log).Error().Err(err).Msg("count preferences failed")
		writeError(w, http.StatusInternalServerError, "failed to count users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"total_users": n})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownCategory), errors.Is(err, domain.ErrEmptyFeed):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
