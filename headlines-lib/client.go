// ABOUTME: Main client for the Headlines library providing retrieval, saved articles and reader views
// ABOUTME: Offers a clean API for using core functionality without HTTP dependencies

package headlines

import (
	"context"
	"net/url"
	"time"

	"headlines-api/core/analytics"
	"headlines-api/core/domain"
	coreheadlines "headlines-api/core/headlines"
	"headlines-api/core/identity"
	"headlines-api/core/interfaces"
	"headlines-api/core/reader"
	"headlines-api/core/saved"
	"headlines-api/core/workers"
)

// Client is the main entry point for the Headlines library
type Client struct {
	headlines *coreheadlines.Service
	saved     *saved.Service
	reader    *reader.Service
	tracker   *analytics.Client

	// Dispatcher for background analytics delivery
	dispatcher *workers.Dispatcher

	deps   interfaces.Dependencies
	config Config
}

// Config holds the configuration for the client
type Config struct {
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger

	// Upstream endpoints; empty values use the service defaults
	LiveURL     string
	SnapshotURL string

	// APIKey is the upstream credential used when a request carries none
	APIKey string

	// Platform selects the endpoint strategy for TopHeadlines
	Platform domain.Platform

	// AttemptTimeout bounds each endpoint attempt
	AttemptTimeout time.Duration

	// AnalyticsSinks receive events recorded through Track
	AnalyticsSinks []interfaces.AnalyticsSink

	WorkerConfig workers.Config

	// EnableBackgroundAnalytics delivers events on a worker pool
	EnableBackgroundAnalytics bool
}

// NewClient creates a new Headlines client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		Cache:      config.Cache,
		Logger:     config.Logger,
	}

	client := &Client{
		headlines: coreheadlines.NewService(deps, coreheadlines.Config{
			LiveURL:        config.LiveURL,
			SnapshotURL:    config.SnapshotURL,
			AttemptTimeout: config.AttemptTimeout,
		}),
		saved:  saved.NewService(deps),
		reader: reader.NewService(deps),
		deps:   deps,
		config: config,
	}

	var trackerOpts []analytics.Option
	if config.EnableBackgroundAnalytics {
		client.dispatcher = workers.NewDispatcher(config.Logger, config.WorkerConfig)
		if err := client.dispatcher.Start(); err != nil {
			return nil, err
		}
		trackerOpts = append(trackerOpts, analytics.WithDispatcher(client.dispatcher))
	}
	client.tracker = analytics.NewClient(config.Logger, config.AnalyticsSinks, trackerOpts...)

	return client, nil
}

// Close gracefully shuts down the client
func (c *Client) Close() error {
	if c.dispatcher != nil && c.dispatcher.Running() {
		return c.dispatcher.Stop()
	}
	return nil
}

// TopHeadlines retrieves the top headlines for country
func (c *Client) TopHeadlines(ctx context.Context, country string, opts ...HeadlineOption) (*Headlines, error) {
	options := HeadlineOptions{
		Category: domain.CategoryAll,
		PageSize: defaultPageSize,
		Platform: c.config.Platform,
		APIKey:   c.config.APIKey,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Platform == domain.PlatformWeb && !isAbsoluteURL(c.config.SnapshotURL) {
		return nil, errSnapshotURL(c.config.SnapshotURL)
	}

	result, err := c.headlines.FetchTopHeadlines(ctx, domain.HeadlinesRequest{
		Country:  country,
		Category: options.Category,
		PageSize: options.PageSize,
		Platform: options.Platform,
		APIKey:   options.APIKey,
	})
	if err != nil {
		c.tracker.TrackAsync(domain.EventFeedLoadFailed, map[string]interface{}{"country": country})
		return nil, wrapError(err)
	}

	c.tracker.TrackAsync(domain.EventFeedLoaded, map[string]interface{}{
		"country":  country,
		"count":    len(result.Articles),
		"endpoint": result.Endpoint,
	})

	return &Headlines{
		Articles: toPublicArticles(result.Articles),
		Endpoint: result.Endpoint,
	}, nil
}

// Saved lists the user's saved articles, newest first
func (c *Client) Saved(ctx context.Context, user string) ([]Article, error) {
	articles, err := c.saved.List(ctx, user)
	if err != nil {
		return nil, wrapError(err)
	}
	return toPublicArticles(articles), nil
}

// Save stores article in the user's saved list
func (c *Client) Save(ctx context.Context, user string, article Article) error {
	canonical, err := c.canonical(article)
	if err != nil {
		return err
	}
	if err := c.saved.Save(ctx, user, canonical); err != nil {
		return wrapError(err)
	}
	c.tracker.TrackAsync(domain.EventBookmarkAdded, map[string]interface{}{"id": canonical.ID})
	return nil
}

// Remove deletes the article with id from the user's saved list
func (c *Client) Remove(ctx context.Context, user, id string) error {
	if err := c.saved.Remove(ctx, user, id); err != nil {
		return wrapError(err)
	}
	c.tracker.TrackAsync(domain.EventBookmarkRemoved, map[string]interface{}{"id": id})
	return nil
}

// ToggleSaved saves article when absent and removes it when present.
// It reports whether the article is saved afterwards.
func (c *Client) ToggleSaved(ctx context.Context, user string, article Article) (bool, error) {
	canonical, err := c.canonical(article)
	if err != nil {
		return false, err
	}
	isSaved, err := c.saved.Toggle(ctx, user, canonical)
	if err != nil {
		return false, wrapError(err)
	}

	event := domain.EventBookmarkRemoved
	if isSaved {
		event = domain.EventBookmarkAdded
	}
	c.tracker.TrackAsync(event, map[string]interface{}{"id": canonical.ID})
	return isSaved, nil
}

// ReaderView extracts a readable version of the article at url.
// Extraction failures are reported in the view rather than as an error.
func (c *Client) ReaderView(ctx context.Context, url string) ReaderView {
	view := c.reader.ExtractReaderView(ctx, url)
	c.tracker.TrackAsync(domain.EventHeadlineTap, map[string]interface{}{
		"id":     view.ArticleID,
		"status": view.Status,
	})
	return toPublicReaderView(view)
}

// Track records an analytics event on every configured sink
func (c *Client) Track(ctx context.Context, name string, payload map[string]interface{}) {
	c.tracker.Track(ctx, domain.EventName(name), payload)
}

func (c *Client) canonical(article Article) (domain.Article, error) {
	canonical, ok := identity.ToCanonical(article.raw(), time.Now())
	if !ok {
		return domain.Article{}, NewError(ErrorTypeValidation, "article needs a title and an absolute URL").
			WithContext("url", article.URL)
	}
	return canonical, nil
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.HTTPClient == nil {
		return NewError(ErrorTypeConfiguration, "HTTP client is required")
	}

	if config.Cache == nil {
		return NewError(ErrorTypeConfiguration, "cache is required")
	}

	if config.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}

	if config.Platform != domain.PlatformWeb && config.Platform != domain.PlatformNative {
		return NewError(ErrorTypeConfiguration, "platform must be web or native").
			WithContext("platform", string(config.Platform))
	}

	if config.Platform == domain.PlatformWeb && !isAbsoluteURL(config.SnapshotURL) {
		return errSnapshotURL(config.SnapshotURL)
	}

	return nil
}

// isAbsoluteURL reports whether raw is an http or https URL with a host
func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

func errSnapshotURL(snapshotURL string) *Error {
	return NewError(ErrorTypeConfiguration, "web platform requires an absolute snapshot URL; set one with WithEndpoints").
		WithContext("snapshot_url", snapshotURL)
}
