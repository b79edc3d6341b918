// Package main provides the PantrySage inventory API server
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pantrysage/v1/internal/application/consumption"
	"github.com/pantrysage/v1/internal/application/inventory"
	"github.com/pantrysage/v1/internal/application/prediction"
	"github.com/pantrysage/v1/internal/infrastructure/config"
	"github.com/pantrysage/v1/internal/infrastructure/http/server"
	"github.com/pantrysage/v1/internal/infrastructure/monitoring"
	"github.com/pantrysage/v1/internal/infrastructure/notify"
	gormpersistence "github.com/pantrysage/v1/internal/infrastructure/persistence/gorm"
	"github.com/pantrysage/v1/internal/infrastructure/persistence/memory"
	redispersistence "github.com/pantrysage/v1/internal/infrastructure/persistence/redis"
	"github.com/pantrysage/v1/internal/ports/outbound"
	"github.com/pantrysage/v1/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Environment == "development",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := gormpersistence.Open(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}

	store := gormpersistence.NewInventoryRepository(db)
	eventLog := gormpersistence.NewEventLog(db)

	var cache outbound.CacheRepository
	if cfg.UseRedis() {
		redisCache, err := redispersistence.NewCacheRepository(cfg, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		cache = redisCache
		zapLogger.Info("Using Redis cache", zap.String("addr", cfg.RedisAddr()))
	} else {
		cache = memory.NewCacheRepository()
		zapLogger.Info("Using in-memory cache")
	}

	metrics := monitoring.NewMetrics()

	hub := notify.NewWebSocketHub(zapLogger)
	notifier := notify.NewFanout(notify.NewLogSink(zapLogger), hub)

	predictionService := prediction.NewService(store, eventLog, cache, cfg.Predictor.CacheTTL, metrics, zapLogger)
	consumptionService := consumption.NewService(store, eventLog, notifier, predictionService, metrics, zapLogger)
	inventoryService := inventory.NewService(store, eventLog, predictionService, zapLogger)

	httpServer := server.NewAPIServer(cfg, zapLogger, consumptionService, predictionService, inventoryService, metrics, hub)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zapLogger.Info("Starting PantrySage server",
			zap.Int("port", cfg.Server.Port),
			zap.String("environment", cfg.App.Environment),
		)
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exited")
}
