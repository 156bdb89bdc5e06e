// ABOUTME: Mappers for converting between domain articles and API DTOs
// ABOUTME: Incoming articles go through the same normalization as upstream ones

package mappers

import (
	"time"

	"headlines-api/api/dto/requests"
	"headlines-api/api/dto/responses"
	"headlines-api/core/domain"
	"headlines-api/core/identity"
)

// ToArticleResponse converts a domain Article to an ArticleResponse DTO
func ToArticleResponse(article domain.Article) responses.ArticleResponse {
	return responses.ArticleResponse{
		ID:          article.ID,
		Title:       article.Title,
		URL:         article.URL,
		SourceName:  article.SourceName,
		PublishedAt: article.PublishedAt,
	}
}

// ToArticleResponses converts articles preserving order; never returns nil
func ToArticleResponses(articles []domain.Article) []responses.ArticleResponse {
	out := make([]responses.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		out = append(out, ToArticleResponse(article))
	}
	return out
}

// FromSaveRequest canonicalizes a client-supplied article. The id is always
// derived from the URL, so the same story saved twice maps to one entry.
func FromSaveRequest(req requests.SaveArticleRequest, now time.Time) (domain.Article, bool) {
	raw := domain.RawArticle{
		Title:       domain.Some(req.Title),
		URL:         domain.Some(req.URL),
		PublishedAt: optional(req.PublishedAt),
	}
	if req.SourceName != "" {
		raw.Source = domain.Some(domain.RawSource{Name: domain.Some(req.SourceName)})
	}
	return identity.ToCanonical(raw, now)
}

func optional(s string) domain.Optional[string] {
	if s == "" {
		return domain.None[string]()
	}
	return domain.Some(s)
}
