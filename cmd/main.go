package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendads/internal/adapter/adsapi"
	httpadapter "trendads/internal/adapter/http"
	"trendads/internal/adapter/memory"
	"trendads/internal/adapter/postgres"
	"trendads/internal/adapter/trendsapi"
	"trendads/internal/adapter/usecase"
	"trendads/internal/config"
	"trendads/internal/core/port"
	"trendads/internal/db"
)

// main loads configuration, wires the selected storage backend with the
// platform and trends clients into the campaign use case, then serves HTTP
// until a termination signal arrives.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		articles  port.ArticleStore
		campaigns port.CampaignStore
	)
	switch cfg.Storage {
	case "postgres":
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				os.Exit(1)
			}
			logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		articles = postgres.NewArticleRepository(pool)
		campaigns = postgres.NewCampaignRepository(pool)
	default:
		articles = memory.NewArticleStore()
		campaigns = memory.NewCampaignStore()
	}

	platform := adsapi.NewClient(cfg.Ads.PlatformURL, cfg.Ads.PlatformToken)
	trends := trendsapi.NewClient(cfg.Ads.TrendsURL)

	rollback := usecase.NewRollbackCoordinator(platform, logger, cfg.Ads.PropagationDelay)
	provisioner := usecase.NewProvisioner(platform, rollback, logger,
		cfg.Ads.DefaultCPCBidMicros, cfg.Ads.InitialResourceStatus())
	registry := usecase.NewRegistry(campaigns, platform, logger)
	svc := usecase.NewCampaignService(articles, trends, platform, provisioner, registry, logger, cfg.Ads)

	handler := httpadapter.NewHandler(svc, articles, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
