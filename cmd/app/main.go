// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brze0x/sixties-life-bot/internal/application"
	"github.com/Brze0x/sixties-life-bot/internal/config"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/adapter"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/repository"
	tele "github.com/Brze0x/sixties-life-bot/internal/infra/adapters/telegram"
	"github.com/Brze0x/sixties-life-bot/internal/infra/api"
	"github.com/Brze0x/sixties-life-bot/internal/infra/api/apiv1"
	"github.com/Brze0x/sixties-life-bot/internal/infra/db"
	"github.com/Brze0x/sixties-life-bot/internal/infra/i18n"
	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
	"github.com/Brze0x/sixties-life-bot/internal/infra/news"
	red "github.com/Brze0x/sixties-life-bot/internal/infra/redis"
	"github.com/Brze0x/sixties-life-bot/internal/infra/sched"
	"github.com/Brze0x/sixties-life-bot/internal/infra/scheduler"
	"github.com/Brze0x/sixties-life-bot/internal/infra/worker"
	"github.com/Brze0x/sixties-life-bot/internal/usecase"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted token)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	// ---- Metrics ----
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Preference store ----
	store, err := db.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("preference store")
	}
	defer store.Close()

	// ---- News source, optionally behind Redis ----
	var source adapter.NewsSource = news.NewClient(cfg.News.BaseURL, cfg.News.Timeout, logger)
	var prefs repository.PreferenceRepository = store.Prefs
	var rateLimiter tele.RateLimiter
	var newsCache *red.NewsCache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		newsCache = red.NewNewsCache(source, redisClient, red.NewLocker(redisClient), cfg.News.CacheTTL, logger)
		source = newsCache
		prefs = red.NewPreferenceRepoCacheDecorator(store.Prefs, redisClient, cfg.Redis.TTL)
		rateLimiter = red.NewRateLimiter(redisClient)
		logger.Info().Dur("news_ttl", cfg.News.CacheTTL).Msg("redis cache enabled")
	}

	// ---- i18n ----
	tr, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Bot.Language)
	if err != nil {
		logger.Fatal().Err(err).Msg("translator")
	}

	// ---- Use cases ----
	catalog := model.DefaultCatalog()
	labels := cfg.Pagination.Labels
	back := pagination.Button{Text: tr.T("btn_back"), Data: model.CallbackMainMenu}
	newsUC := usecase.NewNewsUseCase(source, catalog, labels, back, logger)
	prefUC := usecase.NewPreferenceUseCase(prefs, store.TM, logger)

	// ---- Facade ----
	facade := application.NewBotFacade(newsUC, prefUC, tr, logger)

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, rateLimiter, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("token", logging.Redact(cfg.Bot.Token, cfg.Runtime.Dev)).Msg("telegram")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- HTTP server ----
	var httpSrv *api.Server
	if cfg.HTTP.Port > 0 {
		httpSrv = api.NewServer(cfg.HTTP, apiv1.NewServer(newsUC, prefUC, logger), logger)
		go func() {
			if err := httpSrv.Start(); err != nil {
				logger.Error().Err(err).Msg("http server error")
			}
		}()
	}

	// ---- Cache warming ----
	var warmSched *scheduler.Scheduler
	var pool *worker.Pool
	if cfg.Scheduler.WarmCron != "" {
		if newsCache == nil {
			logger.Warn().Msg("scheduler.warm_cron is set but redis is disabled; skipping cache warming")
		} else {
			pool = worker.NewPool(cfg.Scheduler.WarmWorkers, logger)
			pool.Start(ctx)
			warmer := sched.NewNewsWarmer(catalog, newsCache, pool, logger)
			warmSched, err = scheduler.NewScheduler(cfg.Scheduler.WarmCron, warmer, logger, scheduler.WithRunOnStart())
			if err != nil {
				logger.Fatal().Err(err).Msg("scheduler")
			}
			warmSched.Start(ctx)
		}
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	botAdapter.StopPolling()
	if warmSched != nil {
		warmSched.Stop()
	}
	if pool != nil {
		pool.Stop()
	}
	if httpSrv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http shutdown")
		}
		stop()
	}
	cancel()
	logger.Info().Msg("bye")
}
