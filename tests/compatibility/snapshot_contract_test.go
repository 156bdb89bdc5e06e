// ABOUTME: Contract tests for the news.json snapshot shared by the generator, the API and web clients
// ABOUTME: Runs live upstream, generation, serving and snapshot retrieval end to end

package compatibility

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"headlines-api/api"
	"headlines-api/api/dto/responses"
	"headlines-api/api/handlers"
	"headlines-api/api/middleware"
	"headlines-api/core/domain"
	"headlines-api/core/headlines"
	"headlines-api/core/interfaces"
	"headlines-api/core/snapshot"
	stdhttp "headlines-api/infrastructure/http/standard"
	"headlines-api/infrastructure/storage/file"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamKey = "contract-key"

// newUpstream serves a NewsAPI-shaped response with n articles, one of them retracted
func newUpstream(t *testing.T, n int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != upstreamKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
			return
		}

		articles := []map[string]interface{}{{"title": domain.RemovedTitle, "url": "https://removed.example/"}}
		for i := 0; i < n; i++ {
			articles = append(articles, map[string]interface{}{
				"title":       fmt.Sprintf("Story %d", i),
				"url":         fmt.Sprintf("https://news.example/story/%d/?utm_campaign=feed", i),
				"publishedAt": "2026-02-22T06:00:00Z",
				"source":      map[string]interface{}{"id": nil, "name": "Example News"},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "ok",
			"totalResults": len(articles),
			"articles":     articles,
		})
	}))
}

func newService(liveURL, snapshotURL string) *headlines.Service {
	return headlines.NewService(interfaces.Dependencies{
		HTTPClient: stdhttp.NewStandardHTTPClient(5*time.Second, stdhttp.WithMaxRetries(0)),
	}, headlines.Config{
		LiveURL:        liveURL,
		SnapshotURL:    snapshotURL,
		AttemptTimeout: 2 * time.Second,
		BackoffStep:    time.Millisecond,
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	upstream := newUpstream(t, 12)
	defer upstream.Close()

	dir := t.TempDir()
	store := file.New(dir)

	generator := snapshot.NewGenerator(newService(upstream.URL, ""), nil,
		snapshot.Target{Name: "file", Storage: store, Key: "news.json"})
	count, err := generator.Generate(context.Background(), "us", 8, upstreamKey)
	require.NoError(t, err)
	assert.Equal(t, 8, count)

	humaAPI, router := api.NewAPI()
	handlers.NewSnapshotHandler(store, "news.json", nil).RegisterRoutes(humaAPI)
	server := httptest.NewServer(router)
	defer server.Close()

	web := newService(upstream.URL, server.URL+"/news.json")
	result, err := web.FetchTopHeadlines(context.Background(), domain.HeadlinesRequest{
		Country:  "us",
		Category: domain.CategoryAll,
		PageSize: 5,
		Platform: domain.PlatformWeb,
	})
	require.NoError(t, err)

	assert.Equal(t, string(headlines.EndpointSnapshot), result.Endpoint)
	require.Len(t, result.Articles, 5)
	first := result.Articles[0]
	assert.Equal(t, "Story 0", first.Title)
	assert.Equal(t, "https://news.example/story/0", first.URL)
	assert.Equal(t, "Example News", first.SourceName)
	assert.Equal(t, "2026-02-22T06:00:00Z", first.PublishedAt)
}

func TestSnapshotFileShape(t *testing.T) {
	upstream := newUpstream(t, 3)
	defer upstream.Close()

	dir := t.TempDir()
	generator := snapshot.NewGenerator(newService(upstream.URL, ""), nil,
		snapshot.Target{Name: "file", Storage: file.New(dir), Key: "news.json"})
	_, err := generator.Generate(context.Background(), "us", 3, upstreamKey)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "news.json"))
	require.NoError(t, err)

	var payload struct {
		Status       string `json:"status"`
		TotalResults int    `json:"totalResults"`
		Articles     []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, 3, payload.TotalResults)
	require.Len(t, payload.Articles, 3)
	assert.Equal(t, "Example News", payload.Articles[2].Source.Name)
}

func TestWebFallsBackToLiveWithoutSnapshot(t *testing.T) {
	upstream := newUpstream(t, 6)
	defer upstream.Close()

	humaAPI, router := api.NewAPI()
	handlers.NewSnapshotHandler(file.New(t.TempDir()), "news.json", nil).RegisterRoutes(humaAPI)
	server := httptest.NewServer(router)
	defer server.Close()

	web := newService(upstream.URL, server.URL+"/news.json")
	result, err := web.FetchTopHeadlines(context.Background(), domain.HeadlinesRequest{
		Country:  "us",
		PageSize: 4,
		Platform: domain.PlatformWeb,
		APIKey:   upstreamKey,
	})
	require.NoError(t, err)

	assert.Equal(t, string(headlines.EndpointLive), result.Endpoint)
	assert.Len(t, result.Articles, 4)
}

func TestWebWithoutSnapshotOrKeyExplainsDeploy(t *testing.T) {
	humaAPI, router := api.NewAPI()
	handlers.NewSnapshotHandler(file.New(t.TempDir()), "news.json", nil).RegisterRoutes(humaAPI)
	server := httptest.NewServer(router)
	defer server.Close()

	web := newService("", server.URL+"/news.json")
	_, err := web.FetchTopHeadlines(context.Background(), domain.HeadlinesRequest{
		Country:  "us",
		PageSize: 4,
		Platform: domain.PlatformWeb,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), headlines.SnapshotHint)
}

func TestHeadlinesBehindRateLimiterReadSnapshotInProcess(t *testing.T) {
	upstream := newUpstream(t, 12)
	defer upstream.Close()

	store := file.New(t.TempDir())
	generator := snapshot.NewGenerator(newService(upstream.URL, ""), nil,
		snapshot.Target{Name: "file", Storage: store, Key: "news.json"})
	_, err := generator.Generate(context.Background(), "us", 10, upstreamKey)
	require.NoError(t, err)

	snapshotURL := "http://localhost:8000/news.json"
	local, err := stdhttp.NewSnapshotClient(
		stdhttp.NewStandardHTTPClient(5*time.Second), snapshotURL, store, "news.json")
	require.NoError(t, err)
	service := headlines.NewService(interfaces.Dependencies{HTTPClient: local}, headlines.Config{
		LiveURL:     upstream.URL,
		SnapshotURL: snapshotURL,
		BackoffStep: time.Millisecond,
	})

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		RateLimiter: middleware.NewRateLimiter(10, 20),
	})
	handlers.NewSnapshotHandler(store, "news.json", nil).RegisterRoutes(humaAPI)
	handlers.NewHeadlinesHandler(service, nil, handlers.HeadlineDefaults{
		Platform: domain.PlatformWeb,
		APIKey:   upstreamKey,
	}).RegisterRoutes(humaAPI)

	for i := 0; i < 30; i++ {
		req := httptest.NewRequest(http.MethodGet, "/headlines?pageSize=5", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, "client %d: %s", i, w.Body.String())
		var body responses.HeadlinesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, string(headlines.EndpointSnapshot), body.Endpoint)
		assert.Equal(t, 5, body.Count)
	}
}
