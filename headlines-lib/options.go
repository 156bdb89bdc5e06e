// ABOUTME: Configuration options for the Headlines library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package headlines

import (
	"time"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"
	"headlines-api/core/workers"
)

const defaultPageSize = 10

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithEndpoints overrides the live and snapshot URLs
func WithEndpoints(liveURL, snapshotURL string) Option {
	return func(c *Config) error {
		c.LiveURL = liveURL
		c.SnapshotURL = snapshotURL
		return nil
	}
}

// WithAPIKey sets the upstream credential
func WithAPIKey(key string) Option {
	return func(c *Config) error {
		c.APIKey = key
		return nil
	}
}

// WithPlatform sets the default endpoint strategy
func WithPlatform(platform domain.Platform) Option {
	return func(c *Config) error {
		c.Platform = platform
		return nil
	}
}

// WithAttemptTimeout bounds each endpoint attempt
func WithAttemptTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return NewError(ErrorTypeConfiguration, "attempt timeout must be positive")
		}
		c.AttemptTimeout = timeout
		return nil
	}
}

// WithAnalyticsSinks sets where tracked events are delivered
func WithAnalyticsSinks(sinks ...interfaces.AnalyticsSink) Option {
	return func(c *Config) error {
		c.AnalyticsSinks = sinks
		return nil
	}
}

// WithWorkerConfig sets the worker pool configuration
func WithWorkerConfig(config workers.Config) Option {
	return func(c *Config) error {
		c.WorkerConfig = config
		return nil
	}
}

// WithBackgroundAnalytics enables or disables background event delivery
func WithBackgroundAnalytics(enabled bool) Option {
	return func(c *Config) error {
		c.EnableBackgroundAnalytics = enabled
		return nil
	}
}

// HeadlineOption is a functional option for a single retrieval
type HeadlineOption func(*HeadlineOptions)

// HeadlineOptions holds per-call retrieval parameters
type HeadlineOptions struct {
	Category string
	PageSize int
	Platform domain.Platform
	APIKey   string
}

// WithCategory filters headlines by category
func WithCategory(category string) HeadlineOption {
	return func(o *HeadlineOptions) {
		o.Category = category
	}
}

// WithPageSize sets the maximum number of articles
func WithPageSize(size int) HeadlineOption {
	return func(o *HeadlineOptions) {
		o.PageSize = size
	}
}

// ForPlatform overrides the client's platform for one call
func ForPlatform(platform domain.Platform) HeadlineOption {
	return func(o *HeadlineOptions) {
		o.Platform = platform
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Cache:          DefaultMemoryCache(),
		HTTPClient:     DefaultHTTPClient(),
		Logger:         DefaultLogger(),
		Platform:       domain.PlatformNative,
		AttemptTimeout: 8 * time.Second,
		WorkerConfig:   workers.DefaultConfig(),
	}
}
