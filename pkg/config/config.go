// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defaults are overlaid by an optional YAML file and then by environment variables

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"headlines-api/core/headlines"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Analytics sink names
const (
	SinkLog    = "log"
	SinkBuffer = "buffer"
	SinkKafka  = "kafka"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	News      NewsConfig      `yaml:"news"`
	Storage   StorageConfig   `yaml:"storage"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port"`

	// RateLimit is the sustained requests per second allowed per client IP
	RateLimit int `yaml:"rate_limit"`

	// RateBurst is the burst size allowed per client IP
	RateBurst int `yaml:"rate_burst"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `yaml:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response. It must exceed the
	// headline retry budget so exhausted retrievals still reach the client.
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// NewsConfig holds headline retrieval settings
type NewsConfig struct {
	// APIKey is the upstream news API credential. It never leaves the server.
	APIKey string `yaml:"api_key"`

	LiveURL string `yaml:"live_url"`

	// SnapshotURL is an external snapshot location. Empty serves the
	// snapshot written to Snapshot.Path from inside the process.
	SnapshotURL string `yaml:"snapshot_url"`

	// Country, Category and PageSize are request defaults
	Country  string `yaml:"country"`
	Category string `yaml:"category"`
	PageSize int    `yaml:"page_size"`

	// Platform is the default client platform (web or native)
	Platform string `yaml:"platform"`

	// AttemptTimeoutSeconds bounds one upstream attempt
	AttemptTimeoutSeconds int `yaml:"attempt_timeout_seconds"`
}

// AttemptTimeout returns the per-attempt timeout as a duration
func (n NewsConfig) AttemptTimeout() time.Duration {
	return time.Duration(n.AttemptTimeoutSeconds) * time.Second
}

// StorageConfig selects the key-value backend for saved articles and buffers
type StorageConfig struct {
	// Type is memory, redis or sqlite
	Type string `yaml:"type"`

	Redis  RedisConfig  `yaml:"redis"`
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `yaml:"path"`
}

// AnalyticsConfig configures event delivery
type AnalyticsConfig struct {
	// Sinks lists enabled sinks: log, buffer, kafka
	Sinks []string `yaml:"sinks"`

	Kafka KafkaConfig `yaml:"kafka"`

	// Workers and QueueSize size the background dispatcher
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// HasSink reports whether name is among the enabled sinks
func (a AnalyticsConfig) HasSink(name string) bool {
	for _, sink := range a.Sinks {
		if sink == name {
			return true
		}
	}
	return false
}

// KafkaConfig holds Kafka producer configuration
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// SnapshotConfig configures snapshot generation
type SnapshotConfig struct {
	// Path is the local file the snapshot is written to and served from
	Path string `yaml:"path"`

	// Schedule is a cron expression for periodic regeneration
	Schedule string `yaml:"schedule"`

	// Country and PageSize are the parameters the snapshot is generated for
	Country  string `yaml:"country"`
	PageSize int    `yaml:"page_size"`

	S3 S3Config `yaml:"s3"`
}

// S3Config holds the optional upload target for snapshots
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Key      string `yaml:"key"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// Enabled reports whether an upload target is configured
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`

	// File enables a rotating log file in addition to stdout
	File string `yaml:"file"`

	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int `yaml:"max_size_mb"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                "8000",
			RateLimit:           10,
			RateBurst:           20,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 60,
		},
		News: NewsConfig{
			LiveURL:               "https://newsapi.org/v2/top-headlines",
			Country:               "us",
			Category:              "all",
			PageSize:              10,
			Platform:              "web",
			AttemptTimeoutSeconds: 8,
		},
		Storage: StorageConfig{
			Type: StorageMemory,
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			SQLite: SQLiteConfig{
				Path: "headlines.db",
			},
		},
		Analytics: AnalyticsConfig{
			Sinks:     []string{SinkLog, SinkBuffer},
			Kafka:     KafkaConfig{Topic: "headline-events"},
			Workers:   4,
			QueueSize: 256,
		},
		Snapshot: SnapshotConfig{
			Path:     "public/news.json",
			Country:  "us",
			PageSize: 50,
			S3: S3Config{
				Key: "news.json",
			},
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 100,
		},
	}
}

// LocalSnapshotURL is the address of this server's own /news.json route
func (c *Config) LocalSnapshotURL() string {
	return "http://localhost:" + c.Server.Port + "/news.json"
}

// RetryBudget is the longest a /headlines request can spend retrieving.
// Both endpoints are only tried when an API key is configured.
func (c *Config) RetryBudget() time.Duration {
	endpoints := 1
	if c.News.APIKey != "" {
		endpoints = 2
	}
	return headlines.RetryBudget(c.News.AttemptTimeout(), endpoints)
}

// LoadFromEnv loads configuration from a .env file, the YAML file named by
// CONFIG_FILE, and environment variables, in increasing precedence.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

// LoadFile overlays the YAML file at path onto the configuration
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.RateLimit = getEnvAsIntOrDefault("RATE_LIMIT_RPS", c.Server.RateLimit)
	c.Server.RateBurst = getEnvAsIntOrDefault("RATE_LIMIT_BURST", c.Server.RateBurst)

	c.News.APIKey = getEnvOrDefault("NEWS_API_KEY", getEnvOrDefault("EXPO_PUBLIC_NEWS_API_KEY", c.News.APIKey))
	c.News.LiveURL = getEnvOrDefault("NEWS_API_URL", c.News.LiveURL)
	c.News.SnapshotURL = getEnvOrDefault("NEWS_SNAPSHOT_URL", c.News.SnapshotURL)
	c.News.Country = getEnvOrDefault("NEWS_COUNTRY", c.News.Country)
	c.News.Category = getEnvOrDefault("NEWS_CATEGORY", c.News.Category)
	c.News.PageSize = getEnvAsIntOrDefault("NEWS_PAGE_SIZE", c.News.PageSize)
	c.News.Platform = getEnvOrDefault("NEWS_PLATFORM", c.News.Platform)
	c.News.AttemptTimeoutSeconds = getEnvAsIntOrDefault("NEWS_ATTEMPT_TIMEOUT_SECONDS", c.News.AttemptTimeoutSeconds)

	c.Storage.Type = getEnvOrDefault("STORAGE_TYPE", c.Storage.Type)
	c.Storage.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Storage.Redis.Address)
	c.Storage.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Storage.Redis.Password)
	c.Storage.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Storage.Redis.DB)
	c.Storage.SQLite.Path = getEnvOrDefault("SQLITE_PATH", c.Storage.SQLite.Path)

	c.Analytics.Sinks = getEnvAsListOrDefault("ANALYTICS_SINKS", c.Analytics.Sinks)
	c.Analytics.Kafka.Brokers = getEnvAsListOrDefault("KAFKA_BROKERS", c.Analytics.Kafka.Brokers)
	c.Analytics.Kafka.Topic = getEnvOrDefault("KAFKA_TOPIC", c.Analytics.Kafka.Topic)

	c.Snapshot.Path = getEnvOrDefault("SNAPSHOT_PATH", c.Snapshot.Path)
	c.Snapshot.Schedule = getEnvOrDefault("SNAPSHOT_SCHEDULE", c.Snapshot.Schedule)
	c.Snapshot.S3.Bucket = getEnvOrDefault("SNAPSHOT_S3_BUCKET", c.Snapshot.S3.Bucket)
	c.Snapshot.S3.Key = getEnvOrDefault("SNAPSHOT_S3_KEY", c.Snapshot.S3.Key)
	c.Snapshot.S3.Region = getEnvOrDefault("AWS_REGION", c.Snapshot.S3.Region)
	c.Snapshot.S3.Endpoint = getEnvOrDefault("SNAPSHOT_S3_ENDPOINT", c.Snapshot.S3.Endpoint)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma-separated environment variable
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errors.New("rate limit values cannot be negative")
	}

	if c.News.LiveURL == "" {
		return errors.New("news live URL cannot be empty")
	}
	if c.News.Country == "" {
		return errors.New("news country cannot be empty")
	}
	if c.News.PageSize < 1 || c.News.PageSize > 50 {
		return errors.New("news page size must be between 1 and 50")
	}
	if c.News.Platform != "web" && c.News.Platform != "native" {
		return errors.New("news platform must be 'web' or 'native'")
	}
	if c.News.AttemptTimeoutSeconds < 1 {
		return errors.New("attempt timeout must be at least 1 second")
	}
	if budget := c.RetryBudget(); time.Duration(c.Server.WriteTimeoutSeconds)*time.Second <= budget {
		return fmt.Errorf("write timeout must exceed the headline retry budget of %s", budget)
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis storage")
		}
	case StorageSQLite:
		if c.Storage.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite storage")
		}
	default:
		return errors.New("storage type must be 'memory', 'redis' or 'sqlite'")
	}

	for _, sink := range c.Analytics.Sinks {
		if sink != SinkLog && sink != SinkBuffer && sink != SinkKafka {
			return fmt.Errorf("unknown analytics sink %q", sink)
		}
	}
	if c.Analytics.HasSink(SinkKafka) && (len(c.Analytics.Kafka.Brokers) == 0 || c.Analytics.Kafka.Topic == "") {
		return errors.New("kafka brokers and topic are required when the kafka sink is enabled")
	}

	if c.Snapshot.PageSize < 1 || c.Snapshot.PageSize > 50 {
		return errors.New("snapshot page size must be between 1 and 50")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	return nil
}
