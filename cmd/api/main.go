package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/vendorconnect/vendorconnect-platform/internal/api/router"
	"github.com/vendorconnect/vendorconnect-platform/internal/app/bootstrap"
	"github.com/vendorconnect/vendorconnect-platform/internal/chatbot"
	appconfig "github.com/vendorconnect/vendorconnect-platform/internal/config"
	httpmiddleware "github.com/vendorconnect/vendorconnect-platform/internal/http/middleware"
	"github.com/vendorconnect/vendorconnect-platform/internal/observability/metrics"
	"github.com/vendorconnect/vendorconnect-platform/internal/webchat"
	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

const (
	rateLimitSweepInterval = time.Minute
	rateLimitIdle          = 10 * time.Minute
)

func main() {
	// Local development reads .env; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting vendorconnect chatbot API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := bootstrap.BuildPostgresPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect postgres", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}

	catalog, err := bootstrap.BuildCatalog(cfg, pool, redisClient, logger)
	if err != nil {
		logger.Error("failed to build marketplace catalog", "error", err)
		os.Exit(1)
	}

	metricsHandler, chatMetrics := setupMetrics()

	bot := chatbot.NewBot(catalog.Repository,
		chatbot.WithLogger(logger),
		chatbot.WithMetrics(chatMetrics),
		chatbot.WithConfidenceThreshold(cfg.ChatConfidenceThreshold),
	)
	chatHandler := chatbot.NewHandler(bot, catalog.Repository, logger)
	var transcript webchat.TranscriptStore
	if redisClient != nil {
		transcript = webchat.NewRedisTranscriptStore(redisClient)
	}
	webchatHandler := webchat.NewHandler(bot, chatHandler, transcript, chatMetrics, logger)

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.RunCleanup(rateLimitSweepInterval, rateLimitIdle, ctx.Done())

	routerCfg := &router.Config{
		Logger:             logger,
		ChatbotHandler:     chatHandler,
		WebchatHandler:     webchatHandler,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        limiter,
		Readiness:          readinessChecks(pool, redisClient),
		AdminToken:         cfg.AdminToken,
	}
	if catalog.Cache != nil {
		routerCfg.Catalog = catalog.Cache
	}
	r := router.New(routerCfg)

	// No WriteTimeout: it would also cut off hijacked WebSocket connections.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics builds a dedicated registry with runtime collectors and the chatbot metrics.
func setupMetrics() (http.Handler, *metrics.ChatbotMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	chatMetrics := metrics.NewChatbotMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), chatMetrics
}

// readinessChecks pings the optional backing services.
func readinessChecks(pool *pgxpool.Pool, redisClient *redis.Client) []router.ReadinessCheck {
	var checks []router.ReadinessCheck
	if pool != nil {
		checks = append(checks, router.ReadinessCheck{Name: "postgres", Check: pool.Ping})
	}
	if redisClient != nil {
		checks = append(checks, router.ReadinessCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}
	return checks
}
