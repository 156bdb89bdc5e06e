package main

import (
	"fmt"
	"strings"
	"time"

	"headlines-api/api/dto/responses"
	"headlines-api/pkg/utils/timeago"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Top Headlines (%s)", strings.ToUpper(m.country))))
	b.WriteString("\n")

	switch m.State {
	case StateLoading:
		b.WriteString(StatusStyle.Render("Loading headlines..."))
		b.WriteString("\n")
	case StateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n")
	case StateReady:
		if len(m.Articles) == 0 {
			b.WriteString(InfoStyle.Render("No headlines right now."))
			b.WriteString("\n")
		}
		for i, article := range m.Articles {
			b.WriteString(m.renderRow(i, article))
			b.WriteString("\n")
		}
		if m.Endpoint != "" {
			b.WriteString("\n")
			b.WriteString(InfoStyle.Render("served from " + m.Endpoint))
			b.WriteString("\n")
		}
	}

	if m.Notice != "" {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.Notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("j/k move  s save  r refresh  q quit"))
	return b.String()
}

func (m Model) renderRow(i int, article responses.ArticleResponse) string {
	marker := "  "
	if m.Saved[article.ID] {
		marker = SavedStyle.Render("* ")
	}

	line := article.Title
	if article.SourceName != "" {
		line += " - " + article.SourceName
	}
	if i == m.Cursor {
		line = SelectedStyle.Render(line)
	}

	if age := timeago.Since(article.PublishedAt, time.Now()); age != "" {
		line += "  " + InfoStyle.Render(age)
	}
	return marker + line
}
