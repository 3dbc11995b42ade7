package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/catalog/internal/app"
	"github.com/odyssey-erp/catalog/internal/masterdata/categories"
	"github.com/odyssey-erp/catalog/internal/masterdata/vendors"
	"github.com/odyssey-erp/catalog/internal/observability"
	"github.com/odyssey-erp/catalog/internal/resource"
	"github.com/odyssey-erp/catalog/internal/seed"
	"github.com/odyssey-erp/catalog/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("open stores", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer stores.Close()

	metrics := observability.NewMetrics()

	if cfg.SeedOnStartup {
		if err := seed.Run(ctx, logger, app.SeedTargets(stores, logger, metrics.Jobs())...); err != nil {
			logger.Error("seed catalog", slog.Any("error", err))
			stores.Close()
			os.Exit(1)
		}
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("asynq inspector close", slog.Any("error", err))
		}
	}()

	handlerCfg := resource.HandlerConfig{
		MaxBodyBytes:   cfg.AppMaxBodyBytes,
		RequestTimeout: cfg.AppRequestTimeout,
	}
	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		CategoriesHandler: categories.NewHandler(logger, stores.Categories, metrics, handlerCfg),
		VendorsHandler:    vendors.NewHandler(logger, stores.Vendors, metrics, handlerCfg),
		JobHandler:        jobs.NewHandler(inspector, logger),
		Metrics:           metrics,
		AccessLog:         true,
	})

	// ReadTimeout would cut long create streams, so only the header read is
	// bounded.
	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.AppReadTimeout,
		WriteTimeout:      cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
