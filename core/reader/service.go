// ABOUTME: Reader service extracts a clean, readable version of an article page
// ABOUTME: Fetches through the shared HTTP client, parses with go-readability and caches results

package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"headlines-api/core/domain"
	apperrors "headlines-api/core/errors"
	"headlines-api/core/identity"
	"headlines-api/core/interfaces"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
)

const (
	// CacheTTL is how long a successful view is reused
	CacheTTL = time.Hour

	// DefaultFetchTimeout bounds the page download
	DefaultFetchTimeout = 20 * time.Second

	maxPageBytes = 5 << 20
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	trailingSpaces = regexp.MustCompile(`[ \t]+\n`)
	leadingSpaces  = regexp.MustCompile(`\n[ \t]+`)
	headingBefore  = regexp.MustCompile(`\n(#{1,6} )`)
	headingAfter   = regexp.MustCompile(`(#{1,6} [^\n]+)\n([^\n])`)
)

// Service extracts reader views
type Service struct {
	deps         interfaces.Dependencies
	logger       interfaces.Logger
	fetchTimeout time.Duration
}

// NewService creates a new reader service
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		deps:         deps,
		logger:       deps.LoggerOrNop(),
		fetchTimeout: DefaultFetchTimeout,
	}
}

// ExtractReaderView returns the reader view for rawURL. Failures are reported
// in the view's Status and Error fields rather than as an error.
func (s *Service) ExtractReaderView(ctx context.Context, rawURL string) domain.ReaderView {
	normalized := identity.NormalizeURL(rawURL)
	view := domain.ReaderView{
		ArticleID: normalized,
		URL:       normalized,
		Status:    domain.ReaderStatusOK,
	}

	pageURL, err := url.Parse(normalized)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return failed(view, "only http and https article URLs can be opened in the reader")
	}

	cacheKey := "reader:" + normalized
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached
	}

	view, err = s.extract(ctx, pageURL, view)
	if err != nil {
		fields := map[string]interface{}{
			"url":   normalized,
			"error": err.Error(),
		}
		if status, ok := apperrors.UpstreamStatus(err); ok {
			fields["status_code"] = status
			s.logger.Warn("Article page unavailable", fields)
		} else {
			s.logger.Error("Failed to parse reader view", fields)
		}
		return failed(view, err.Error())
	}

	if s.deps.Cache != nil {
		if data, err := json.Marshal(view); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, CacheTTL)
		}
	}
	return view
}

func (s *Service) fromCache(ctx context.Context, key string) (domain.ReaderView, bool) {
	if s.deps.Cache == nil {
		return domain.ReaderView{}, false
	}
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return domain.ReaderView{}, false
	}
	var view domain.ReaderView
	if err := json.Unmarshal(data, &view); err != nil || !view.OK() {
		return domain.ReaderView{}, false
	}
	return view, true
}

func (s *Service) extract(ctx context.Context, pageURL *url.URL, view domain.ReaderView) (domain.ReaderView, error) {
	if s.deps.HTTPClient == nil {
		return view, fmt.Errorf("HTTP client not configured")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	resp, err := s.deps.HTTPClient.Get(fetchCtx, pageURL.String())
	if err != nil {
		return view, fmt.Errorf("failed to fetch article: %w", err)
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return view, &apperrors.UpstreamStatusError{Source: "article page", URL: view.URL, StatusCode: resp.StatusCode()}
	}

	article, err := readability.FromReader(io.LimitReader(body, maxPageBytes), pageURL)
	if err != nil {
		return view, fmt.Errorf("failed to extract article: %w", err)
	}

	view.Title = article.Title
	view.Byline = article.Byline
	view.SiteName = article.SiteName
	view.Image = article.Image
	view.Excerpt = article.Excerpt
	view.Content = article.Content
	view.TextContent = strings.TrimSpace(article.TextContent)

	if view.Content != "" {
		converter := md.NewConverter(pageURL.Host, true, nil)
		markdown, err := converter.ConvertString(view.Content)
		if err != nil {
			s.logger.Debug("Failed to convert HTML to markdown", map[string]interface{}{
				"url":   view.URL,
				"error": err.Error(),
			})
		} else {
			view.Markdown = renderMarkdown(view, markdown)
		}
	}

	return view, nil
}

func failed(view domain.ReaderView, message string) domain.ReaderView {
	view.Status = domain.ReaderStatusError
	view.Error = message
	return view
}

// renderMarkdown prefixes the converted body with a title and a byline row
func renderMarkdown(view domain.ReaderView, body string) string {
	var b strings.Builder

	if view.Title != "" {
		b.WriteString("# ")
		b.WriteString(view.Title)
		b.WriteString("\n\n")
	}

	var meta []string
	if view.Byline != "" {
		meta = append(meta, "**Author:** "+view.Byline)
	}
	if view.SiteName != "" {
		meta = append(meta, "**Source:** "+view.SiteName)
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " | "))
		b.WriteString("\n\n---\n\n")
	}

	b.WriteString(tidyMarkdown(body))
	return b.String()
}

// tidyMarkdown collapses blank runs and stray whitespace left by conversion
func tidyMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")
	markdown = excessNewlines.ReplaceAllString(markdown, "\n\n")
	markdown = trailingSpaces.ReplaceAllString(markdown, "\n")
	markdown = leadingSpaces.ReplaceAllString(markdown, "\n")
	markdown = headingBefore.ReplaceAllString(markdown, "\n\n$1")
	markdown = headingAfter.ReplaceAllString(markdown, "$1\n\n$2")
	markdown = excessNewlines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}
