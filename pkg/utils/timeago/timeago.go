// ABOUTME: Time utilities for article publication timestamps
// ABOUTME: Parses the timestamp layouts news sources use and renders relative ages

package timeago

import (
	"fmt"
	"strings"
	"time"
)

// Layouts seen in publishedAt fields
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// Parse parses a publication timestamp. It returns the zero time when no layout matches.
func Parse(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Since renders how long before now the timestamp value was, e.g. "3h ago".
// Unparseable values render as an empty string.
func Since(value string, now time.Time) string {
	t := Parse(value)
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
	return t.Format("Jan 2, 2006")
}
