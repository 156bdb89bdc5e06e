// ABOUTME: Snapshot generator writes the pre-fetched headlines artifact served as news.json
// ABOUTME: Fetches live headlines once and publishes them to every configured storage

package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"
)

// ContentType of the generated artifact
const ContentType = "application/json"

// Target is a storage location for the snapshot
type Target struct {
	Name    string
	Storage interfaces.ObjectStorage
	Key     string
}

// Generator builds and publishes snapshots
type Generator struct {
	headlines interfaces.HeadlinesService
	targets   []Target
	logger    interfaces.Logger
}

// NewGenerator creates a generator publishing to targets in order
func NewGenerator(headlines interfaces.HeadlinesService, logger interfaces.Logger, targets ...Target) *Generator {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Generator{headlines: headlines, targets: targets, logger: logger}
}

// Generate fetches live headlines for country and publishes them.
// Every target is attempted; the returned error joins the failures.
func (g *Generator) Generate(ctx context.Context, country string, pageSize int, apiKey string) (int, error) {
	result, err := g.headlines.FetchTopHeadlines(ctx, domain.HeadlinesRequest{
		Country:  country,
		Category: domain.CategoryAll,
		PageSize: pageSize,
		Platform: domain.PlatformNative,
		APIKey:   apiKey,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch headlines: %w", err)
	}

	data, err := Encode(result.Articles)
	if err != nil {
		return 0, err
	}

	var errs []error
	for _, target := range g.targets {
		if err := target.Storage.Put(ctx, target.Key, data, ContentType); err != nil {
			g.logger.Error("Failed to publish snapshot", map[string]interface{}{
				"target": target.Name,
				"key":    target.Key,
				"error":  err.Error(),
			})
			errs = append(errs, fmt.Errorf("%s: %w", target.Name, err))
			continue
		}
		g.logger.Info("Snapshot published", map[string]interface{}{
			"target":   target.Name,
			"key":      target.Key,
			"articles": len(result.Articles),
			"bytes":    len(data),
		})
	}

	return len(result.Articles), errors.Join(errs...)
}

// Encode renders articles in the upstream response shape
func Encode(articles []domain.Article) ([]byte, error) {
	payload := domain.HeadlinesPayload{
		Status:       domain.StatusOK,
		TotalResults: len(articles),
		Articles:     make([]domain.RawArticle, 0, len(articles)),
	}
	for _, article := range articles {
		payload.Articles = append(payload.Articles, article.Raw())
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}
