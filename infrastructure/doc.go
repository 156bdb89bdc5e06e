// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, logging, analytics delivery and storage.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: SQLite-backed persistent cache
// - http/standard: Standard library HTTP client with retry logic
// - logger/structured: logrus logger with optional rotating file output
// - analytics/kafka: Kafka analytics sink built on sarama
// - storage/file: Local file storage for the news.json snapshot
// - storage/s3: S3 upload target for the news.json snapshot
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// # HTTP Client
//
// The HTTP client retries transient failures when asked to:
//
//	client := standard.NewStandardHTTPClient(30*time.Second, standard.WithMaxRetries(2))
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := structured.New(structured.Options{Level: "info"})
//	logger.Info("Headlines loaded", map[string]interface{}{
//	    "endpoint": "live",
//	    "articles": 10,
//	})
package infrastructure
