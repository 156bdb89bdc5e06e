package main

import (
	"errors"
	"testing"

	"headlines-api/api/dto/responses"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	HeadlinesFunc func(country string) (*responses.HeadlinesResponse, error)
	SavedFunc     func() (*responses.SavedArticlesResponse, error)
	ToggleFunc    func(article responses.ArticleResponse) (*responses.SaveToggleResponse, error)
}

func (m *mockAPI) Headlines(country string) (*responses.HeadlinesResponse, error) {
	return m.HeadlinesFunc(country)
}

func (m *mockAPI) Saved() (*responses.SavedArticlesResponse, error) {
	return m.SavedFunc()
}

func (m *mockAPI) Toggle(article responses.ArticleResponse) (*responses.SaveToggleResponse, error) {
	return m.ToggleFunc(article)
}

var sampleArticles = []responses.ArticleResponse{
	{ID: "1", Title: "First story", URL: "https://news.example/1", SourceName: "Example"},
	{ID: "2", Title: "Second story", URL: "https://news.example/2"},
}

func readyModel(api API) Model {
	m := NewModel(api, "us")
	next, _ := m.Update(headlinesMsg{resp: &responses.HeadlinesResponse{Articles: sampleArticles, Endpoint: "snapshot"}})
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_HeadlinesLoaded(t *testing.T) {
	m := readyModel(&mockAPI{})

	assert.Equal(t, StateReady, m.State)
	assert.Len(t, m.Articles, 2)
	assert.Contains(t, m.View(), "First story - Example")
	assert.Contains(t, m.View(), "served from snapshot")
}

func TestModel_HeadlinesError(t *testing.T) {
	m := NewModel(&mockAPI{}, "us")

	next, _ := m.Update(headlinesMsg{err: errors.New("boom")})
	m = next.(Model)

	assert.Equal(t, StateError, m.State)
	assert.Contains(t, m.View(), "boom")
}

func TestModel_CursorStaysInBounds(t *testing.T) {
	m := readyModel(&mockAPI{})

	next, _ := m.Update(key("k"))
	assert.Equal(t, 0, next.(Model).Cursor)

	for i := 0; i < 5; i++ {
		next, _ = next.(Model).Update(key("j"))
	}
	assert.Equal(t, 1, next.(Model).Cursor)
}

func TestModel_ToggleSavesSelectedArticle(t *testing.T) {
	var toggled responses.ArticleResponse
	api := &mockAPI{
		ToggleFunc: func(article responses.ArticleResponse) (*responses.SaveToggleResponse, error) {
			toggled = article
			return &responses.SaveToggleResponse{ID: article.ID, Saved: true}, nil
		},
	}
	m := readyModel(api)
	next, _ := m.Update(key("j"))

	next, cmd := next.(Model).Update(key("s"))
	require.NotNil(t, cmd)
	next, _ = next.(Model).Update(cmd())
	m = next.(Model)

	assert.Equal(t, "2", toggled.ID)
	assert.True(t, m.Saved["2"])
	assert.Equal(t, "Saved for later", m.Notice)

	next, _ = m.Update(toggledMsg{resp: &responses.SaveToggleResponse{ID: "2", Saved: false}})
	assert.False(t, next.(Model).Saved["2"])
}

func TestModel_SavedListMarksArticles(t *testing.T) {
	m := readyModel(&mockAPI{})

	next, _ := m.Update(savedMsg{resp: &responses.SavedArticlesResponse{Articles: sampleArticles[:1], Count: 1}})
	m = next.(Model)

	assert.True(t, m.Saved["1"])
	assert.False(t, m.Saved["2"])
}

func TestModel_ToggleIgnoredWhileLoading(t *testing.T) {
	m := NewModel(&mockAPI{}, "us")

	_, cmd := m.Update(key("s"))
	assert.Nil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	m := readyModel(&mockAPI{})

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
