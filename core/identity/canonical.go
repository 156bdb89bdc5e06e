package identity

import (
	"time"

	"headlines-api/core/domain"
)

// ISOTimestampLayout renders timestamps the way the upstream API does, in UTC with milliseconds
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ToCanonical validates a raw article and converts it to a canonical article.
// It returns false for articles without a title or URL, articles marked as
// removed upstream, and URLs that normalize to nothing. now is used when the
// article carries no publication date.
func ToCanonical(raw domain.RawArticle, now time.Time) (domain.Article, bool) {
	title, ok := domain.NonEmpty(raw.Title)
	if !ok || title == domain.RemovedTitle {
		return domain.Article{}, false
	}

	rawURL, ok := domain.NonEmpty(raw.URL)
	if !ok {
		return domain.Article{}, false
	}

	normalizedURL := NormalizeURL(rawURL)
	if normalizedURL == "" {
		return domain.Article{}, false
	}

	sourceName, ok := raw.SourceName()
	if !ok {
		sourceName = domain.UnknownSource
	}

	publishedAt, ok := domain.NonEmpty(raw.PublishedAt)
	if !ok {
		publishedAt = now.UTC().Format(ISOTimestampLayout)
	}

	return domain.Article{
		ID:          DeriveID(raw),
		Title:       title,
		URL:         normalizedURL,
		SourceName:  sourceName,
		PublishedAt: publishedAt,
	}, true
}

// MapAndDedup converts raw articles in order, dropping invalid ones and later
// duplicates of an id, and stops once pageSize articles were accepted.
func MapAndDedup(raws []domain.RawArticle, pageSize int, now time.Time) []domain.Article {
	articles := make([]domain.Article, 0, min(len(raws), max(pageSize, 0)))
	if pageSize < 1 {
		return articles
	}

	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		article, ok := ToCanonical(raw, now)
		if !ok {
			continue
		}
		if _, dup := seen[article.ID]; dup {
			continue
		}

		seen[article.ID] = struct{}{}
		articles = append(articles, article)
		if len(articles) >= pageSize {
			break
		}
	}

	return articles
}
