package requests

// TrackEventRequest records a client-side analytics event
type TrackEventRequest struct {
	Name    string                 `json:"name" enum:"feed_loaded,headline_tap,bookmark_added,bookmark_removed,saved_opened,feed_load_failed" doc:"Event name"`
	Payload map[string]interface{} `json:"payload,omitempty" doc:"Event properties"`
}
