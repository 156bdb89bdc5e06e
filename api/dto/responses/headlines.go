// ABOUTME: Response DTOs for headline API endpoints
// ABOUTME: Articles are returned in their canonical, normalized form

package responses

// ArticleResponse represents a canonical article in API responses
type ArticleResponse struct {
	ID          string `json:"id" doc:"Stable article identifier"`
	Title       string `json:"title" doc:"Article headline"`
	URL         string `json:"url" doc:"Normalized article URL"`
	SourceName  string `json:"sourceName" doc:"Publisher name"`
	PublishedAt string `json:"publishedAt" doc:"ISO-8601 publication time"`
}

// HeadlinesResponse is the body of GET /headlines
type HeadlinesResponse struct {
	Status   string            `json:"status" example:"ok"`
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"count"`
	Endpoint string            `json:"endpoint" enum:"snapshot,live" doc:"Which endpoint produced the articles"`
}

// StatusResponse is the {status, message} shape used by the upstream API
type StatusResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message,omitempty"`
}
