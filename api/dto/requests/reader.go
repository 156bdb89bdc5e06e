// ABOUTME: Request DTOs for reader view API endpoints
// ABOUTME: Defines the structure for reader view extraction requests

package requests

// ReaderViewRequest represents a request to open one article in the reader
type ReaderViewRequest struct {
	// URL of the article page
	URL string `json:"url" required:"true" minLength:"1" example:"https://example.com/article" doc:"Article URL to extract"`
}
