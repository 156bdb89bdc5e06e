// ABOUTME: Snapshot generator command that writes news.json from live headlines
// ABOUTME: Runs once by default or on a cron schedule, publishing to disk and optionally S3

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"headlines-api/core/headlines"
	"headlines-api/core/interfaces"
	"headlines-api/core/snapshot"
	"headlines-api/infrastructure/cache/memory"
	stdhttp "headlines-api/infrastructure/http/standard"
	"headlines-api/infrastructure/logger/structured"
	"headlines-api/infrastructure/storage/file"
	"headlines-api/infrastructure/storage/s3"
	"headlines-api/pkg/config"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	schedule := flag.String("schedule", cfg.Snapshot.Schedule, "Cron schedule; empty runs once and exits")
	out := flag.String("out", cfg.Snapshot.Path, "Local path of the generated snapshot")
	country := flag.String("country", cfg.Snapshot.Country, "Country to fetch headlines for")
	pageSize := flag.Int("page-size", cfg.Snapshot.PageSize, "Number of headlines to include")
	bucket := flag.String("s3-bucket", cfg.Snapshot.S3.Bucket, "Optional S3 bucket to upload the snapshot to")
	flag.Parse()

	logger := structured.New(structured.Options{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	defer logger.Close()

	if cfg.News.APIKey == "" {
		log.Fatal("NEWS_API_KEY is required to generate a snapshot")
	}

	deps := interfaces.Dependencies{
		Cache:      memory.NewMemoryCache(),
		HTTPClient: stdhttp.NewStandardHTTPClient(30 * time.Second),
		Logger:     logger,
	}
	service := headlines.NewService(deps, headlines.Config{
		LiveURL:        cfg.News.LiveURL,
		AttemptTimeout: cfg.News.AttemptTimeout(),
	})

	targets := []snapshot.Target{{
		Name:    "file",
		Storage: file.New(filepath.Dir(*out)),
		Key:     filepath.Base(*out),
	}}

	if *bucket != "" {
		store, err := s3.New(context.Background(), s3.Config{
			Bucket:   *bucket,
			Region:   cfg.Snapshot.S3.Region,
			Endpoint: cfg.Snapshot.S3.Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to configure S3 upload: %v", err)
		}
		targets = append(targets, snapshot.Target{Name: "s3", Storage: store, Key: cfg.Snapshot.S3.Key})
	}

	generator := snapshot.NewGenerator(service, logger, targets...)
	run := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		_, err := generator.Generate(ctx, *country, *pageSize, cfg.News.APIKey)
		return err
	}

	if *schedule == "" {
		if err := run(); err != nil {
			log.Fatalf("Snapshot generation failed: %v", err)
		}
		return
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(*schedule, func() {
		if err := run(); err != nil {
			logger.Error("Scheduled snapshot failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}); err != nil {
		log.Fatalf("Invalid schedule %q: %v", *schedule, err)
	}

	logger.Info("Snapshot generator scheduled", map[string]interface{}{
		"schedule": *schedule,
		"out":      *out,
		"targets":  len(targets),
	})

	if err := run(); err != nil {
		logger.Error("Initial snapshot failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-scheduler.Stop().Done()
	logger.Info("Snapshot generator stopped", nil)
}
