package main

import (
	"headlines-api/api/dto/responses"

	tea "github.com/charmbracelet/bubbletea"
)

// State is where the model is in its load cycle
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Model is the TUI state
type Model struct {
	api     API
	country string

	State    State
	Articles []responses.ArticleResponse
	Endpoint string
	Saved    map[string]bool
	Cursor   int
	Notice   string
	Err      error
}

// NewModel creates a model reading headlines for country
func NewModel(api API, country string) Model {
	return Model{
		api:     api,
		country: country,
		State:   StateLoading,
		Saved:   make(map[string]bool),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchHeadlines(m.api, m.country),
		fetchSaved(m.api),
	)
}

// Selected returns the article under the cursor
func (m Model) Selected() (responses.ArticleResponse, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Articles) {
		return responses.ArticleResponse{}, false
	}
	return m.Articles[m.Cursor], true
}
