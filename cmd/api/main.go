// ABOUTME: Main entry point for the Headlines API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"headlines-api/api"
	"headlines-api/api/handlers"
	"headlines-api/api/middleware"
	"headlines-api/core/analytics"
	"headlines-api/core/domain"
	"headlines-api/core/headlines"
	"headlines-api/core/interfaces"
	"headlines-api/core/reader"
	"headlines-api/core/saved"
	"headlines-api/core/snapshot"
	"headlines-api/core/workers"
	kafkasink "headlines-api/infrastructure/analytics/kafka"
	"headlines-api/infrastructure/cache/memory"
	"headlines-api/infrastructure/cache/redis"
	"headlines-api/infrastructure/cache/sqlite"
	stdhttp "headlines-api/infrastructure/http/standard"
	"headlines-api/infrastructure/logger/structured"
	"headlines-api/infrastructure/storage/file"
	"headlines-api/pkg/config"
	"headlines-api/pkg/featureflags"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.New(structured.Options{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	defer logger.Close()

	flags := featureflags.NewEnvManager("")
	logger.Info("Starting Headlines API", map[string]interface{}{
		"port":         cfg.Server.Port,
		"storage_type": cfg.Storage.Type,
		"platform":     cfg.News.Platform,
		"has_api_key":  cfg.News.APIKey != "",
	})

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	httpClient := stdhttp.NewStandardHTTPClient(30*time.Second,
		stdhttp.WithTransport(&middleware.LoggingRoundTripper{Logger: logger}),
	)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	dispatcher := workers.NewDispatcher(logger, workers.Config{
		MaxWorkers: cfg.Analytics.Workers,
		QueueSize:  cfg.Analytics.QueueSize,
	})
	if err := dispatcher.Start(); err != nil {
		log.Fatalf("Failed to start dispatcher: %v", err)
	}
	defer dispatcher.Stop()

	ctx := context.Background()
	sinks, buffer, closeSinks := newSinks(cfg, cache, logger, flags.IsEnabled(ctx, featureflags.AnalyticsEnabled))
	defer closeSinks()
	tracker := analytics.NewClient(logger, sinks, analytics.WithDispatcher(dispatcher))

	snapshotStore := file.New(filepath.Dir(cfg.Snapshot.Path))
	snapshotKey := filepath.Base(cfg.Snapshot.Path)

	headlinesDeps, snapshotURL := headlineDependencies(cfg, deps, snapshotStore, snapshotKey)
	headlinesService := headlines.NewService(headlinesDeps, headlines.Config{
		LiveURL:        cfg.News.LiveURL,
		SnapshotURL:    snapshotURL,
		AttemptTimeout: cfg.News.AttemptTimeout(),
	})
	savedService := saved.NewService(deps)
	readerService := reader.NewService(deps)

	apiConfig := api.APIConfig{Logger: logger, Flags: flags}
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) && cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
		limiter.StartCleanup(time.Minute, stopCleanup)
		apiConfig.RateLimiter = limiter
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewHealthHandler(flags).RegisterRoutes(humaAPI)
	handlers.NewHeadlinesHandler(headlinesService, tracker, handlers.HeadlineDefaults{
		Country:  cfg.News.Country,
		Category: cfg.News.Category,
		PageSize: cfg.News.PageSize,
		Platform: domain.Platform(cfg.News.Platform),
		APIKey:   cfg.News.APIKey,
		Timeout:  time.Duration(cfg.Server.WriteTimeoutSeconds)*time.Second - time.Second,
	}).RegisterRoutes(humaAPI)

	if flags.IsEnabled(ctx, featureflags.SnapshotEnabled) {
		handlers.NewSnapshotHandler(snapshotStore, snapshotKey, logger).RegisterRoutes(humaAPI)
	}
	if flags.IsEnabled(ctx, featureflags.SavedEnabled) {
		handlers.NewSavedHandler(savedService, tracker).RegisterRoutes(humaAPI)
	}
	if flags.IsEnabled(ctx, featureflags.ReaderEnabled) {
		handlers.NewReaderHandler(readerService, tracker).RegisterRoutes(humaAPI)
	}
	if flags.IsEnabled(ctx, featureflags.ProxyEnabled) {
		handlers.NewProxyHandler(httpClient, cfg.News.LiveURL, cfg.News.APIKey, logger).RegisterRoutes(humaAPI)
	}
	if flags.IsEnabled(ctx, featureflags.AnalyticsEnabled) {
		var source handlers.EventSource
		if buffer != nil {
			source = buffer
		}
		handlers.NewEventsHandler(tracker, source).RegisterRoutes(humaAPI)
	}

	scheduler := scheduleSnapshots(cfg, headlinesService, snapshotStore, snapshotKey, logger)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// headlineDependencies answers this server's own snapshot URL from the snapshot
// store so retrieval never loops back through the HTTP stack and its rate limiter
func headlineDependencies(cfg *config.Config, deps interfaces.Dependencies, store stdhttp.SnapshotReader, key string) (interfaces.Dependencies, string) {
	snapshotURL := cfg.News.SnapshotURL
	if snapshotURL == "" {
		snapshotURL = cfg.LocalSnapshotURL()
	}
	if snapshotURL != cfg.LocalSnapshotURL() {
		return deps, snapshotURL
	}

	local, err := stdhttp.NewSnapshotClient(deps.HTTPClient, snapshotURL, store, key)
	if err != nil {
		log.Fatalf("Invalid snapshot URL: %v", err)
	}
	deps.HTTPClient = local
	return deps, snapshotURL
}

// newCache selects the key-value backend. Redis and SQLite fall back to memory when unavailable.
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	noop := func() {}

	switch cfg.Storage.Type {
	case config.StorageRedis:
		redisCache, err := redis.NewRedisCache(cfg.Storage.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), noop
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Storage.Redis.Address,
		})
		return redisCache, func() { _ = redisCache.Close() }

	case config.StorageSQLite:
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Storage.SQLite.Path)
		if err != nil {
			logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), noop
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Storage.SQLite.Path,
		})
		return sqliteCache, func() { _ = sqliteCache.Close() }
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(), noop
}

// newSinks builds the configured analytics sinks
func newSinks(cfg *config.Config, cache interfaces.Cache, logger interfaces.Logger, enabled bool) ([]interfaces.AnalyticsSink, *analytics.BufferSink, func()) {
	if !enabled {
		return nil, nil, func() {}
	}

	var sinks []interfaces.AnalyticsSink
	var buffer *analytics.BufferSink
	var closers []func()

	for _, name := range cfg.Analytics.Sinks {
		switch name {
		case config.SinkLog:
			sinks = append(sinks, analytics.NewLogSink(logger))
		case config.SinkBuffer:
			buffer = analytics.NewBufferSink(cache)
			sinks = append(sinks, buffer)
		case config.SinkKafka:
			sink, err := kafkasink.NewSink(kafkasink.Config{
				Brokers: cfg.Analytics.Kafka.Brokers,
				Topic:   cfg.Analytics.Kafka.Topic,
			})
			if err != nil {
				logger.Error("Failed to create Kafka sink, continuing without it", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			sinks = append(sinks, sink)
			closers = append(closers, func() { _ = sink.Close() })
		}
	}

	return sinks, buffer, func() {
		for _, c := range closers {
			c()
		}
	}
}

// scheduleSnapshots regenerates news.json on the configured cron schedule
func scheduleSnapshots(cfg *config.Config, service interfaces.HeadlinesService, store *file.Storage, key string, logger interfaces.Logger) *cron.Cron {
	if cfg.Snapshot.Schedule == "" {
		return nil
	}
	if cfg.News.APIKey == "" {
		logger.Warn("Snapshot schedule ignored, no news API key configured", nil)
		return nil
	}

	generator := snapshot.NewGenerator(service, logger, snapshot.Target{Name: "file", Storage: store, Key: key})
	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.Snapshot.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := generator.Generate(ctx, cfg.Snapshot.Country, cfg.Snapshot.PageSize, cfg.News.APIKey); err != nil {
			logger.Error("Scheduled snapshot failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})
	if err != nil {
		logger.Error("Invalid snapshot schedule", map[string]interface{}{
			"schedule": cfg.Snapshot.Schedule,
			"error":    err.Error(),
		})
		return nil
	}

	scheduler.Start()
	logger.Info("Snapshot schedule started", map[string]interface{}{
		"schedule": cfg.Snapshot.Schedule,
	})
	return scheduler
}

func init() {
	fmt.Println(`
  _   _                _ _ _
 | | | | ___  __ _  __| | (_)_ __   ___  ___
 | |_| |/ _ \/ _' |/ _' | | | '_ \ / _ \/ __|
 |  _  |  __/ (_| | (_| | | | | | |  __/\__ \
 |_| |_|\___|\__,_|\__,_|_|_|_| |_|\___||___/
	`)
}
