package domain

// Reader view statuses
const (
	ReaderStatusOK    = "ok"
	ReaderStatusError = "error"
)

// ReaderView is the clean, readable content of one article page
type ReaderView struct {
	// ArticleID is the stable identifier of the article the view belongs to
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
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}

// OK reports whether extraction succeeded
func (v ReaderView) OK() bool {
	return v.Status == ReaderStatusOK
}
