// ABOUTME: Request DTOs for saved-article API endpoints
// ABOUTME: Articles are re-validated and re-identified on the server

package requests

// SaveArticleRequest is an article a client wants to keep for later
type SaveArticleRequest struct {
	Title       string `json:"title" minLength:"1" maxLength:"500" doc:"Article headline"`
	URL         string `json:"url" minLength:"1" maxLength:"2048" example:"https://example.com/story" doc:"Article URL"`
	SourceName  string `json:"sourceName,omitempty" doc:"Publisher name"`
	PublishedAt string `json:"publishedAt,omitempty" doc:"ISO-8601 publication time"`
}
