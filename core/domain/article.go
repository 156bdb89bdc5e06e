// ABOUTME: Article domain models for raw upstream records and canonical articles
// ABOUTME: Canonical articles are the validated, normalized records exposed to clients

package domain

const (
	// UnknownSource is used when an article carries no source name
	UnknownSource = "Unknown source"

	// RemovedTitle marks articles retracted upstream
	RemovedTitle = "[Removed]"
)

// RawSource is the nested source object of an upstream article
type RawSource struct {
	Name Optional[string] `json:"name"`
}

// RawArticle is an article exactly as supplied by the upstream feed.
// No field is guaranteed to be present or well formed.
type RawArticle struct {
	Title       Optional[string]    `json:"title"`
	URL         Optional[string]    `json:"url"`
	PublishedAt Optional[string]    `json:"publishedAt"`
	Source      Optional[RawSource] `json:"source"`
}

// SourceName returns the nested source name if present
func (a RawArticle) SourceName() (string, bool) {
	src, ok := a.Source.Get()
	if !ok {
		return "", false
	}
	return NonEmpty(src.Name)
}

// Article is a validated, normalized article
type Article struct {
	// ID is the stable identifier, derived from the normalized URL
	ID string `json:"id"`

	// Title is the article headline, never empty
	Title string `json:"title"`

	// URL is the normalized absolute article URL
	URL string `json:"url"`

	// SourceName is the publisher name
	SourceName string `json:"sourceName"`

	// PublishedAt is an ISO-8601 timestamp
	PublishedAt string `json:"publishedAt"`
}

// IsValid checks if the article has all required fields
func (a *Article) IsValid() bool {
	return a.ID != "" && a.Title != "" && a.URL != ""
}

// Raw converts the article back into the upstream record shape.
// Snapshot artifacts are written in this shape.
func (a Article) Raw() RawArticle {
	return RawArticle{
		Title:       Some(a.Title),
		URL:         Some(a.URL),
		PublishedAt: Some(a.PublishedAt),
		Source:      Some(RawSource{Name: Some(a.SourceName)}),
	}
}

// SavedArticles maps article IDs to saved articles
type SavedArticles map[string]Article
