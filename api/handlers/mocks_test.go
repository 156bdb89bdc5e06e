package handlers

import (
	"context"
	"io"
	"strings"
	"sync"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"
)

type mockHeadlinesService struct {
	fetchFunc func(ctx context.Context, req domain.HeadlinesRequest) (*domain.HeadlinesResult, error)
}

func (m *mockHeadlinesService) FetchTopHeadlines(ctx context.Context, req domain.HeadlinesRequest) (*domain.HeadlinesResult, error) {
	return m.fetchFunc(ctx, req)
}

type trackedEvent struct {
	name    domain.EventName
	payload map[string]interface{}
}

type mockTracker struct {
	mu     sync.Mutex
	events []trackedEvent
}

func (m *mockTracker) Track(ctx context.Context, name domain.EventName, payload map[string]interface{}) {
	m.TrackAsync(name, payload)
}

func (m *mockTracker) TrackAsync(name domain.EventName, payload map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, trackedEvent{name: name, payload: payload})
}

func (m *mockTracker) names() []domain.EventName {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]domain.EventName, 0, len(m.events))
	for _, e := range m.events {
		names = append(names, e.name)
	}
	return names
}

type mockSavedService struct {
	listFunc   func(ctx context.Context, user string) ([]domain.Article, error)
	saveFunc   func(ctx context.Context, user string, article domain.Article) error
	removeFunc func(ctx context.Context, user string, id string) error
	toggleFunc func(ctx context.Context, user string, article domain.Article) (bool, error)
}

func (m *mockSavedService) Read(ctx context.Context, user string) (domain.SavedArticles, error) {
	return domain.SavedArticles{}, nil
}

func (m *mockSavedService) Write(ctx context.Context, user string, saved domain.SavedArticles) error {
	return nil
}

func (m *mockSavedService) Save(ctx context.Context, user string, article domain.Article) error {
	return m.saveFunc(ctx, user, article)
}

func (m *mockSavedService) Remove(ctx context.Context, user string, id string) error {
	return m.removeFunc(ctx, user, id)
}

func (m *mockSavedService) List(ctx context.Context, user string) ([]domain.Article, error) {
	return m.listFunc(ctx, user)
}

func (m *mockSavedService) Toggle(ctx context.Context, user string, article domain.Article) (bool, error) {
	return m.toggleFunc(ctx, user, article)
}

type mockReaderService struct {
	extractFunc func(ctx context.Context, url string) domain.ReaderView
}

func (m *mockReaderService) ExtractReaderView(ctx context.Context, url string) domain.ReaderView {
	return m.extractFunc(ctx, url)
}

type mockResponse struct {
	status int
	body   string
}

func (r *mockResponse) StatusCode() int          { return r.status }
func (r *mockResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(r.body)) }
func (r *mockResponse) Header(key string) string { return "" }

type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.getFunc(ctx, url)
}

type mockSnapshotReader struct {
	getFunc func(ctx context.Context, key string) ([]byte, error)
}

func (m *mockSnapshotReader) Get(ctx context.Context, key string) ([]byte, error) {
	return m.getFunc(ctx, key)
}

type mockEventSource struct {
	events []domain.Event
	err    error
}

func (m *mockEventSource) Events(ctx context.Context) ([]domain.Event, error) {
	return m.events, m.err
}
