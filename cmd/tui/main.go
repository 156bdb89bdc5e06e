// ABOUTME: Terminal client for browsing top headlines served by the Headlines API
// ABOUTME: Lists articles and toggles saved state for the configured user

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOrDefault("HEADLINES_API_URL", "http://localhost:8000"), "Headlines API base URL")
	user := flag.String("user", envOrDefault("HEADLINES_USER", "default"), "User whose saved list is shown")
	country := flag.String("country", "us", "Country to fetch headlines for")
	flag.Parse()

	m := NewModel(NewAPIClient(*apiURL, *user), *country)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
