package domain

import "time"

// EventName names an analytics event
type EventName string

// Known analytics events
const (
	EventFeedLoaded      EventName = "feed_loaded"
	EventHeadlineTap     EventName = "headline_tap"
	EventBookmarkAdded   EventName = "bookmark_added"
	EventBookmarkRemoved EventName = "bookmark_removed"
	EventSavedOpened     EventName = "saved_opened"
	EventFeedLoadFailed  EventName = "feed_load_failed"
)

// Event is a single analytics event
type Event struct {
	Name      EventName              `json:"name"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
}
