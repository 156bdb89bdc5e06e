package reader

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Rivers Rise Across the Valley</title><meta property="og:site_name" content="Valley Times"></head>
<body>
<header><nav><a href="/">Home</a></nav></header>
<article>
<h1>Rivers Rise Across the Valley</h1>
<p class="byline">By Jordan Lee</p>
<p>Heavy rain over the weekend pushed rivers across the valley to their highest levels in a decade, forcing road closures and prompting officials to open emergency shelters for residents in low-lying neighborhoods.</p>
<p>Forecasters expect the water to crest on Tuesday before slowly receding through the rest of the week, although more showers are possible on Thursday according to the regional weather service.</p>
<p>Local schools will remain closed until inspectors confirm that buildings and bus routes are safe, the district said in a statement released late on Sunday evening.</p>
</article>
<footer>Copyright</footer>
</body>
</html>`

type stubResponse struct {
	status int
	body   string
}

func (r *stubResponse) StatusCode() int          { return r.status }
func (r *stubResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(r.body)) }
func (r *stubResponse) Header(key string) string { return "" }

type stubClient struct {
	mu    sync.Mutex
	calls int
	resp  *stubResponse
	err   error
}

func (c *stubClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, interfaces.ErrCacheMiss
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestExtractReaderView_RejectsNonHTTPURLs(t *testing.T) {
	client := &stubClient{}
	service := NewService(interfaces.Dependencies{HTTPClient: client})

	for _, raw := range []string{"", "javascript:alert(1)", "ftp://files.example/a", "not a url"} {
		view := service.ExtractReaderView(context.Background(), raw)
		assert.Equal(t, domain.ReaderStatusError, view.Status, raw)
		assert.NotEmpty(t, view.Error, raw)
	}
	assert.Zero(t, client.calls)
}

func TestExtractReaderView_ExtractsAndCaches(t *testing.T) {
	client := &stubClient{resp: &stubResponse{status: 200, body: articlePage}}
	cache := newMemoryCache()
	service := NewService(interfaces.Dependencies{HTTPClient: client, Cache: cache})

	view := service.ExtractReaderView(context.Background(), "HTTPS://News.Example/rivers/?utm_source=app#top")
	require.True(t, view.OK(), view.Error)

	assert.Equal(t, "https://news.example/rivers", view.ArticleID)
	assert.Contains(t, view.TextContent, "highest levels in a decade")
	assert.Contains(t, view.Markdown, "highest levels in a decade")
	assert.NotContains(t, view.Markdown, "\n\n\n")
	assert.Equal(t, CacheTTL, cache.ttls["reader:https://news.example/rivers"])

	again := service.ExtractReaderView(context.Background(), "https://news.example/rivers")
	assert.Equal(t, view, again)
	assert.Equal(t, 1, client.calls, "second request is served from cache")
}

func TestExtractReaderView_FetchFailure(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	cache := newMemoryCache()
	service := NewService(interfaces.Dependencies{HTTPClient: client, Cache: cache})

	view := service.ExtractReaderView(context.Background(), "https://news.example/a")

	assert.False(t, view.OK())
	assert.Contains(t, view.Error, "connection refused")
	assert.Empty(t, cache.data, "failures are not cached")
}

type levelLogger struct {
	interfaces.NopLogger
	mu     sync.Mutex
	levels []string
	fields []map[string]interface{}
}

func (l *levelLogger) record(level string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels = append(l.levels, level)
	l.fields = append(l.fields, fields)
}

func (l *levelLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", fields) }
func (l *levelLogger) Error(msg string, fields map[string]interface{}) { l.record("error", fields) }

func TestExtractReaderView_HTTPErrorStatus(t *testing.T) {
	client := &stubClient{resp: &stubResponse{status: 404, body: "missing"}}
	logger := &levelLogger{}
	service := NewService(interfaces.Dependencies{HTTPClient: client, Logger: logger})

	view := service.ExtractReaderView(context.Background(), "https://news.example/a")

	assert.False(t, view.OK())
	assert.Equal(t, "article page returned status 404", view.Error)
	require.Equal(t, []string{"warn"}, logger.levels)
	assert.Equal(t, 404, logger.fields[0]["status_code"])
}

func TestExtractReaderView_FetchFailureLogsError(t *testing.T) {
	logger := &levelLogger{}
	service := NewService(interfaces.Dependencies{
		HTTPClient: &stubClient{err: errors.New("connection refused")},
		Logger:     logger,
	})

	service.ExtractReaderView(context.Background(), "https://news.example/a")

	assert.Equal(t, []string{"error"}, logger.levels)
}

func TestTidyMarkdown(t *testing.T) {
	input := "Intro  \n\n\n\n## Heading\nBody\r\n   indented"

	assert.Equal(t, "Intro\n\n## Heading\n\nBody\nindented", tidyMarkdown(input))
}

func TestRenderMarkdown_Header(t *testing.T) {
	out := renderMarkdown(domain.ReaderView{Title: "T", Byline: "A", SiteName: "S"}, "body")

	assert.Equal(t, "# T\n\n**Author:** A | **Source:** S\n\n---\n\nbody", out)
}
