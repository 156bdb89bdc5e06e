// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used by the API layer and the library facade

package interfaces

import (
	"context"

	"headlines-api/core/domain"
)

// HeadlinesService retrieves normalized top headlines
type HeadlinesService interface {
	FetchTopHeadlines(ctx context.Context, req domain.HeadlinesRequest) (*domain.HeadlinesResult, error)
}

// SavedService manages a user's saved articles, keyed by article ID
type SavedService interface {
	Read(ctx context.Context, user string) (domain.SavedArticles, error)
	Write(ctx context.Context, user string, saved domain.SavedArticles) error
	Save(ctx context.Context, user string, article domain.Article) error
	Remove(ctx context.Context, user string, id string) error
	List(ctx context.Context, user string) ([]domain.Article, error)
}

// ReaderService extracts clean article content for the in-app reader
type ReaderService interface {
	ExtractReaderView(ctx context.Context, url string) domain.ReaderView
}

// AnalyticsSink receives analytics events. Failures are logged by the caller and
// never interrupt the flow that produced the event.
type AnalyticsSink interface {
	Track(ctx context.Context, event domain.Event) error
}

// AnalyticsTracker records analytics events
type AnalyticsTracker interface {
	// Track delivers an event to every sink and waits for them
	Track(ctx context.Context, name domain.EventName, payload map[string]interface{})

	// TrackAsync schedules delivery without blocking the caller
	TrackAsync(name domain.EventName, payload map[string]interface{})
}
