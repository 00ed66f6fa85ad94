package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-ru/mba-roi-go/internal/cache"
	"github.com/cloud-ru/mba-roi-go/internal/config"
	"github.com/cloud-ru/mba-roi-go/internal/logging"
	"github.com/cloud-ru/mba-roi-go/internal/server"
	"github.com/cloud-ru/mba-roi-go/internal/tools"
	"github.com/cloud-ru/mba-roi-go/internal/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint,
		logging.WithComponent(logger, logging.ComponentTrace))
	if err != nil {
		logger.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize cache", "error", err, "backend", cfg.CacheBackend)
		os.Exit(1)
	}
	defer closeStore()

	roiCache := cache.NewROICache(store, logging.WithComponent(logger, logging.ComponentCache))
	srv := server.New(tools.NewRegistry(cfg, tracer, roiCache), logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("Tracing shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting MBA ROI calculator", "addr", cfg.Addr(), "cache", cfg.CacheBackend)
	if err := srv.Start(cfg.Addr()); err != nil {
		logger.Error("Server error", "error", err, "addr", cfg.Addr())
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// openStore выбирает хранилище кеша по CACHE_BACKEND. Для none возвращает nil store.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Store, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized redis cache", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return cache.NewRedisStore(client, cfg.CacheTTL), func() { _ = client.Close() }, nil
	case config.CacheMemory:
		store := cache.NewMemoryStore(cfg.CacheSize, cfg.CacheTTL)
		go cleanExpired(ctx, store, cfg.CacheTTL, logger)
		logger.Info("Initialized memory cache", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
		return store, func() {}, nil
	default:
		logger.Info("ROI cache disabled")
		return nil, func() {}, nil
	}
}

func cleanExpired(ctx context.Context, store *cache.MemoryStore, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.CleanExpired(); n > 0 {
				logger.Debug("Removed expired cache entries", "count", n, "remaining", store.Size())
			}
		}
	}
}
