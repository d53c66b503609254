package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MGreizis/banana-counter/internal/config"
	"github.com/MGreizis/banana-counter/internal/handler"
	"github.com/MGreizis/banana-counter/internal/metrics"
	"github.com/MGreizis/banana-counter/internal/middleware"
	"github.com/MGreizis/banana-counter/internal/realtime"
	"github.com/MGreizis/banana-counter/internal/repository"
	"github.com/MGreizis/banana-counter/internal/service"
	"github.com/MGreizis/banana-counter/internal/web"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	// storage
	var store repository.Store
	if cfg.RedisAddr != "" {
		r, err := repository.NewRedisStore(cfg.RedisAddr, cfg.KeyPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		store = r
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis score store")
	} else {
		store = repository.NewMemoryStore()
		log.Warn().Msg("no redis configured, scores are held in memory and lost on restart")
	}

	// services
	metricsRegistry := metrics.NewRegistry()
	hub := realtime.NewHub()
	scores := service.NewScores(store, metricsRegistry, hub)

	var limiter *service.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = service.NewLimiter(store, int64(cfg.RateLimitPerMinute), time.Minute)
		log.Info().Int("per_minute", cfg.RateLimitPerMinute).Msg("increment rate limiting enabled")
	}

	// handlers
	scoreHandler := handler.NewScoreHandler(scores)
	boardHandler := handler.NewLeaderboardHandler(scores, cfg.LeaderboardSize, cfg.MaxLeaderboardLimit)
	adminHandler := handler.NewAdminHandler(scores, cfg.AdminListLimit)
	healthHandler := handler.NewHealthHandler(scores)

	// admin auth (optional: only if a secret is configured)
	adminChain := func(h http.Handler) http.Handler { return h }
	if cfg.AdminJWTSecret != "" {
		adminChain = middleware.AdminAuth([]byte(cfg.AdminJWTSecret), cfg.AdminJWTIssuer)
		log.Info().Msg("admin authentication enabled")
	} else {
		log.Warn().Msg("admin endpoints are unauthenticated, set BANANA_ADMIN_JWT_SECRET")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsRegistry.Handler())
	mux.Handle("/score", middleware.Observe(metricsRegistry, "score")(
		middleware.RateLimit(limiter, metricsRegistry)(scoreHandler)))
	mux.Handle("/leaderboard", middleware.Observe(metricsRegistry, "leaderboard")(boardHandler))
	mux.Handle("/admin/scores", adminChain(adminHandler))
	mux.Handle("/admin/scores/reset", adminChain(http.HandlerFunc(adminHandler.Reset)))
	mux.HandleFunc("/health", healthHandler.Liveness)
	mux.HandleFunc("/ready", healthHandler.Readiness)
	mux.HandleFunc("/status", healthHandler.Status)
	mux.Handle("/ws", realtime.Handler(hub))
	mux.Handle("/", web.Handler())

	// middleware chain
	h := middleware.RequestSizeLimit(middleware.MaxRequestSize)(mux)
	h = middleware.Logging(h)
	h = middleware.RequestID(h)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Msgf("listening %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.GracefulShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("store close failed")
	}
	log.Info().Msg("server exited")
}
