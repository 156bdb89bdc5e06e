package responses

import "headlines-api/core/domain"

// EventsResponse lists buffered analytics events, oldest first
type EventsResponse struct {
	Events []domain.Event `json:"events"`
	Count  int            `json:"count"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string          `json:"status" example:"ok"`
	Features map[string]bool `json:"features"`
}
