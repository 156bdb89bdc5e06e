package responses

// SavedArticlesResponse lists saved articles, newest first
type SavedArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"count"`
}

// SaveToggleResponse reports the saved state after a toggle
type SaveToggleResponse struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}
