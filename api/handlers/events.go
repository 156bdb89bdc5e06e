// ABOUTME: Analytics events handler for the Huma API
// ABOUTME: Accepts client events and exposes the buffered event log

package handlers

import (
	"context"
	"net/http"

	"headlines-api/api/dto/requests"
	"headlines-api/api/dto/responses"
	"headlines-api/core/domain"
	"headlines-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

// EventSource returns buffered analytics events
type EventSource interface {
	Events(ctx context.Context) ([]domain.Event, error)
}

// EventsHandler handles analytics event requests
type EventsHandler struct {
	tracker interfaces.AnalyticsTracker
	buffer  EventSource
}

// NewEventsHandler creates a new events handler. buffer may be nil when
// no buffering sink is configured.
func NewEventsHandler(tracker interfaces.AnalyticsTracker, buffer EventSource) *EventsHandler {
	return &EventsHandler{tracker: tracker, buffer: buffer}
}

// RegisterRoutes registers all event routes
func (h *EventsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "trackEvent",
		Method:        http.MethodPost,
		Path:          "/events",
		Summary:       "Record an analytics event",
		Description:   "Queues the event for delivery to the configured sinks. Delivery failures are not reported.",
		Tags:          []string{"Analytics"},
		DefaultStatus: http.StatusAccepted,
	}, h.TrackEvent)

	huma.Register(api, huma.Operation{
		OperationID: "listEvents",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "List buffered analytics events",
		Tags:        []string{"Analytics"},
	}, h.ListEvents)
}

// TrackEventInput defines the input for the TrackEvent operation
type TrackEventInput struct {
	Body requests.TrackEventRequest
}

// TrackEvent handles POST /events
func (h *EventsHandler) TrackEvent(ctx context.Context, input *TrackEventInput) (*struct{}, error) {
	if h.tracker != nil {
		h.tracker.TrackAsync(domain.EventName(input.Body.Name), input.Body.Payload)
	}
	return nil, nil
}

// ListEventsOutput defines the output for the ListEvents operation
type ListEventsOutput struct {
	Body responses.EventsResponse
}

// ListEvents handles GET /events
func (h *EventsHandler) ListEvents(ctx context.Context, input *struct{}) (*ListEventsOutput, error) {
	if h.buffer == nil {
		return nil, huma.Error404NotFound("event buffering is not enabled")
	}

	events, err := h.buffer.Events(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	if events == nil {
		events = []domain.Event{}
	}

	return &ListEventsOutput{
		Body: responses.EventsResponse{Events: events, Count: len(events)},
	}, nil
}
