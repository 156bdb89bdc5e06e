package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case headlinesMsg:
		return m.handleHeadlines(msg)
	case savedMsg:
		return m.handleSaved(msg)
	case toggledMsg:
		return m.handleToggled(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Articles)-1 {
			m.Cursor++
		}
	case "r":
		if m.State == StateLoading {
			return m, nil
		}
		m.State = StateLoading
		m.Notice = ""
		return m, tea.Batch(fetchHeadlines(m.api, m.country), fetchSaved(m.api))
	case "s":
		article, ok := m.Selected()
		if !ok || m.State != StateReady {
			return m, nil
		}
		return m, toggleSaved(m.api, article)
	}
	return m, nil
}

func (m Model) handleHeadlines(msg headlinesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.State = StateError
		m.Err = msg.err
		return m, nil
	}
	m.State = StateReady
	m.Err = nil
	m.Articles = msg.resp.Articles
	m.Endpoint = msg.resp.Endpoint
	if m.Cursor >= len(m.Articles) {
		m.Cursor = 0
	}
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.Notice = fmt.Sprintf("saved list unavailable: %v", msg.err)
		return m, nil
	}
	saved := make(map[string]bool, len(msg.resp.Articles))
	for _, a := range msg.resp.Articles {
		saved[a.ID] = true
	}
	m.Saved = saved
	return m, nil
}

func (m Model) handleToggled(msg toggledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.Notice = fmt.Sprintf("could not update saved list: %v", msg.err)
		return m, nil
	}
	saved := make(map[string]bool, len(m.Saved)+1)
	for id := range m.Saved {
		saved[id] = true
	}
	if msg.resp.Saved {
		saved[msg.resp.ID] = true
		m.Notice = "Saved for later"
	} else {
		delete(saved, msg.resp.ID)
		m.Notice = "Removed from saved"
	}
	m.Saved = saved
	return m, nil
}
