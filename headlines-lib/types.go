// ABOUTME: Public types for the Headlines library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package headlines

import "headlines-api/core/domain"

// Article is a canonical news article
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	SourceName  string `json:"sourceName"`
	PublishedAt string `json:"publishedAt"`
}

// Headlines is the result of a top-headlines retrieval
type Headlines struct {
	Articles []Article `json:"articles"`

	// Endpoint is "snapshot" or "live"
	Endpoint string `json:"endpoint"`
}

// ReaderView is the readable content of an article page
type ReaderView struct {
	ArticleID   string `json:"articleId"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Byline      string `json:"byline,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Image       string `json:"image,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Content     string `json:"content"`
	Markdown    string `json:"markdown"`
	TextContent string `json:"textContent"`
	OK          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
}

func (a Article) raw() domain.RawArticle {
	raw := domain.RawArticle{
		Title: domain.Some(a.Title),
		URL:   domain.Some(a.URL),
	}
	if a.PublishedAt != "" {
		raw.PublishedAt = domain.Some(a.PublishedAt)
	}
	if a.SourceName != "" {
		raw.Source = domain.Some(domain.RawSource{Name: domain.Some(a.SourceName)})
	}
	return raw
}

func toPublicArticle(a domain.Article) Article {
	return Article{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		SourceName:  a.SourceName,
		PublishedAt: a.PublishedAt,
	}
}

func toPublicArticles(articles []domain.Article) []Article {
	out := make([]Article, len(articles))
	for i, a := range articles {
		out[i] = toPublicArticle(a)
	}
	return out
}

func toPublicReaderView(v domain.ReaderView) ReaderView {
	return ReaderView{
		ArticleID:   v.ArticleID,
		URL:         v.URL,
		Title:       v.Title,
		Byline:      v.Byline,
		SiteName:    v.SiteName,
		Image:       v.Image,
		Excerpt:     v.Excerpt,
		Content:     v.Content,
		Markdown:    v.Markdown,
		TextContent: v.TextContent,
		OK:          v.OK(),
		Error:       v.Error,
	}
}
