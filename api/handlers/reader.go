// ABOUTME: Reader handler for the Huma API
// ABOUTME: Provides the endpoint for extracting clean article content from a web page

package handlers

import (
	"context"
	"net/http"

	"headlines-api/api/dto/requests"
	"headlines-api/api/dto/responses"
	"headlines-api/core/domain"
	"headlines-api/core/interfaces"
	"headlines-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// ReaderHandler handles reader view extraction requests
type ReaderHandler struct {
	readerService interfaces.ReaderService
	tracker       interfaces.AnalyticsTracker
}

// NewReaderHandler creates a new reader handler. tracker may be nil.
func NewReaderHandler(readerService interfaces.ReaderService, tracker interfaces.AnalyticsTracker) *ReaderHandler {
	return &ReaderHandler{
		readerService: readerService,
		tracker:       tracker,
	}
}

// RegisterRoutes registers all reader-related routes
func (h *ReaderHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getReaderView",
		Method:      http.MethodPost,
		Path:        "/reader",
		Summary:     "Extract reader view for an article",
		Description: "Extracts clean article content from a web page, removing ads and clutter. Extraction failures are reported in the view.",
		Tags:        []string{"Reader"},
	}, h.GetReaderView)
}

// GetReaderViewInput defines the input for the GetReaderView operation
type GetReaderViewInput struct {
	Body requests.ReaderViewRequest
}

// GetReaderViewOutput defines the output for the GetReaderView operation
type GetReaderViewOutput struct {
	Body responses.ReaderViewResponse
}

// GetReaderView handles reader view extraction
func (h *ReaderHandler) GetReaderView(ctx context.Context, input *GetReaderViewInput) (*GetReaderViewOutput, error) {
	view := h.readerService.ExtractReaderView(ctx, input.Body.URL)

	if h.tracker != nil && featureflags.IsEnabled(ctx, featureflags.AnalyticsEnabled) {
		h.tracker.TrackAsync(domain.EventHeadlineTap, map[string]interface{}{
			"id":     view.ArticleID,
			"status": view.Status,
		})
	}

	return &GetReaderViewOutput{
		Body: responses.ReaderViewResponse{View: view},
	}, nil
}
