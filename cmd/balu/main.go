package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/balu-pos/balu-pos/internal/app"
	"github.com/balu-pos/balu-pos/internal/auth"
	"github.com/balu-pos/balu-pos/internal/catalog/categories"
	"github.com/balu-pos/balu-pos/internal/catalog/products"
	"github.com/balu-pos/balu-pos/internal/observability"
	"github.com/balu-pos/balu-pos/internal/platform/db"
	"github.com/balu-pos/balu-pos/internal/reporting"
	"github.com/balu-pos/balu-pos/internal/sales"
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	authMW := auth.Middleware{Logger: logger}
	metrics := observability.NewMetrics()

	reportCache := reporting.NewCache(redisClient, cfg.ReportCacheTTL)
	if err := reportCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}
	reportingRepo := reporting.NewRepository(pool)
	reportingService := reporting.NewService(reportingRepo, reportCache)
	reportingHandler := reporting.NewHandler(logger, reportingService, authMW)

	salesRepo := sales.NewRepository(pool)
	salesService := sales.NewService(salesRepo, reportCache, logger, sales.ServiceConfig{
		RestockOnCancel: cfg.RestockOnCancel,
	})
	salesHandler := sales.NewHandler(logger, salesService, authMW, metrics)

	categoriesRepo := categories.NewRepository(pool)
	categoriesService := categories.NewService(categoriesRepo)
	categoriesHandler := categories.NewHandler(logger, categoriesService, authMW)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo, categoriesRepo, products.ServiceConfig{
		LowStockThreshold: cfg.LowStockThreshold,
	})
	productsHandler := products.NewHandler(logger, productsService, authMW)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Auth:              authMW,
		SalesHandler:      salesHandler,
		ReportingHandler:  reportingHandler,
		ProductsHandler:   productsHandler,
		CategoriesHandler: categoriesHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
