// ABOUTME: Request and result types for top-headlines retrieval
// ABOUTME: Also defines the upstream response payload shared by live and snapshot endpoints

package domain

// Platform identifies the client platform requesting headlines
type Platform string

const (
	// PlatformWeb prefers the pre-generated snapshot endpoint
	PlatformWeb Platform = "web"

	// PlatformNative queries the live upstream API only
	PlatformNative Platform = "native"
)

// CategoryAll means the feed is not filtered by category
const CategoryAll = "all"

// HeadlinesRequest describes a top-headlines retrieval
type HeadlinesRequest struct {
	// Country is the locale/country code, e.g. "us"
	Country string

	// Category filters the feed; CategoryAll disables filtering
	Category string

	// PageSize is the maximum number of articles to return
	PageSize int

	// Platform selects the endpoint strategy
	Platform Platform

	// APIKey is the upstream credential, optional on web
	APIKey string
}

// IsWeb reports whether the request comes from the web platform
func (r HeadlinesRequest) IsWeb() bool {
	return r.Platform == PlatformWeb
}

// HeadlinesResult is the outcome of a successful retrieval
type HeadlinesResult struct {
	// Articles are ordered, unique and at most PageSize long
	Articles []Article

	// Endpoint names the endpoint kind that produced the articles
	Endpoint string
}

// Upstream payload status values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// HeadlinesPayload is the JSON body served by headline endpoints
type HeadlinesPayload struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults,omitempty"`
	Articles     []RawArticle `json:"articles,omitempty"`
	Message      string       `json:"message,omitempty"`
}
