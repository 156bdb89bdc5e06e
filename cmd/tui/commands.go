package main

import (
	"headlines-api/api/dto/responses"

	tea "github.com/charmbracelet/bubbletea"
)

type headlinesMsg struct {
	resp *responses.HeadlinesResponse
	err  error
}

type savedMsg struct {
	resp *responses.SavedArticlesResponse
	err  error
}

type toggledMsg struct {
	resp *responses.SaveToggleResponse
	err  error
}

func fetchHeadlines(api API, country string) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.Headlines(country)
		return headlinesMsg{resp: resp, err: err}
	}
}

func fetchSaved(api API) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.Saved()
		return savedMsg{resp: resp, err: err}
	}
}

func toggleSaved(api API, article responses.ArticleResponse) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.Toggle(article)
		return toggledMsg{resp: resp, err: err}
	}
}
