package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/config"
	"github.com/Brze0x/sixties-life-bot/internal/infra/api/apiv1"
)

// Server hosts the health probe, Prometheus metrics and the read-only news API.
type Server struct {
	cfg    config.HTTPConfig
	router chi.Router
	server *http.Server
	log    *zerolog.Logger
}

// NewServer builds the router; v1 may be nil to expose only /health and /metrics.
func NewServer(cfg config.HTTPConfig, v1 *apiv1.Server, logger *zerolog.Logger) *Server {
	s := &Server{cfg: cfg, router: chi.NewRouter(), log: logger}
	s.routes(v1)
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes(v1 *apiv1.Server) {
	r := s.router
	r.Use(
		TraceID(),
		Recover(s.log),
		RequestLog(s.log),
	)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
	if v1 != nil {
		r.Group(func(r chi.Router) {
			r.Use(Timeout(s.cfg.Timeout))
			apiv1.RegisterAPIV1(r, v1, s.cfg.APIKey)
		})
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens until Shutdown is called; it returns nil on a clean shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
