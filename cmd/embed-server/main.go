package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/clinic-embed/internal/api/router"
	"github.com/wolfman30/clinic-embed/internal/assets"
	appconfig "github.com/wolfman30/clinic-embed/internal/config"
	"github.com/wolfman30/clinic-embed/internal/heightsync"
	"github.com/wolfman30/clinic-embed/internal/http/handlers"
	"github.com/wolfman30/clinic-embed/internal/observability/metrics"
	"github.com/wolfman30/clinic-embed/pkg/logging"
)

func main() {
	// Load .env if present; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.NewWithFormat(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting clinic-embed server",
		"env", cfg.Env,
		"port", cfg.Port,
		"asset_base_url", cfg.AssetBaseURL,
	)

	assetClient, err := assets.New(assets.Config{
		BaseURL: cfg.AssetBaseURL,
		Timeout: cfg.AssetTimeout,
		Logger:  logger.Logger,
	})
	if err != nil {
		logger.Error("failed to build asset client", "error", err)
		os.Exit(1)
	}

	var fetcher assets.Fetcher = assetClient
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(opts)
		fetcher = assets.NewCachedFetcher(fetcher, redisClient, cfg.AssetCacheTTL, logger.Logger)
		logger.Info("asset cache enabled", "redis_addr", cfg.RedisAddr, "ttl", cfg.AssetCacheTTL)
	}

	embedMetrics := metrics.NewEmbedMetrics(nil)

	embedHandler := handlers.NewEmbedHandler(fetcher, logger, embedMetrics)
	heightSync := heightsync.NewHandler(cfg.HeightSyncDebounce, logger, embedMetrics)

	r := router.New(&router.Config{
		Logger:         logger,
		EmbedHandler:   embedHandler,
		HeightSync:     heightSync,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
