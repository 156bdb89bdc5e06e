// ABOUTME: Headlines handler for the Huma API
// ABOUTME: Serves normalized top headlines and records feed analytics

package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"headlines-api/api/dto/mappers"
	"headlines-api/api/dto/responses"
	"headlines-api/core/domain"
	apperrors "headlines-api/core/errors"
	"headlines-api/core/interfaces"
	"headlines-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// HeadlineDefaults fill in request parameters the client leaves out.
// APIKey is server-held and never accepted from clients.
type HeadlineDefaults struct {
	Country  string
	Category string
	PageSize int
	Platform domain.Platform
	APIKey   string

	// Timeout bounds one retrieval so failures are written before the server's write deadline
	Timeout time.Duration
}

// HeadlinesHandler handles top-headline requests
type HeadlinesHandler struct {
	service  interfaces.HeadlinesService
	tracker  interfaces.AnalyticsTracker
	defaults HeadlineDefaults
}

// NewHeadlinesHandler creates a new headlines handler. tracker may be nil.
func NewHeadlinesHandler(service interfaces.HeadlinesService, tracker interfaces.AnalyticsTracker, defaults HeadlineDefaults) *HeadlinesHandler {
	if defaults.Country == "" {
		defaults.Country = "us"
	}
	if defaults.Category == "" {
		defaults.Category = domain.CategoryAll
	}
	if defaults.PageSize < 1 {
		defaults.PageSize = 10
	}
	if defaults.Platform == "" {
		defaults.Platform = domain.PlatformNative
	}

	return &HeadlinesHandler{
		service:  service,
		tracker:  tracker,
		defaults: defaults,
	}
}

// RegisterRoutes registers all headline-related routes
func (h *HeadlinesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getHeadlines",
		Method:      http.MethodGet,
		Path:        "/headlines",
		Summary:     "Get top headlines",
		Description: "Returns validated, deduplicated top headlines from the snapshot or the live news API",
		Tags:        []string{"Headlines"},
	}, h.GetHeadlines)
}

// GetHeadlinesInput defines the input for the GetHeadlines operation
type GetHeadlinesInput struct {
	Country  string `query:"country" maxLength:"8" doc:"Country code, e.g. us"`
	Category string `query:"category" maxLength:"32" doc:"Category, or all for the unfiltered feed"`
	PageSize int    `query:"pageSize" minimum:"0" maximum:"50" doc:"Maximum number of articles"`
	Platform string `query:"platform" doc:"web or native"`
}

// GetHeadlinesOutput defines the output for the GetHeadlines operation
type GetHeadlinesOutput struct {
	Body responses.HeadlinesResponse
}

// GetHeadlines handles GET /headlines
func (h *HeadlinesHandler) GetHeadlines(ctx context.Context, input *GetHeadlinesInput) (*GetHeadlinesOutput, error) {
	req, err := h.buildRequest(input)
	if err != nil {
		return nil, toHumaError(err)
	}

	fetchCtx := ctx
	if h.defaults.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, h.defaults.Timeout)
		defer cancel()
	}

	result, err := h.service.FetchTopHeadlines(fetchCtx, req)
	if err != nil {
		h.track(ctx, domain.EventFeedLoadFailed, map[string]interface{}{
			"platform": string(req.Platform),
			"message":  err.Error(),
		})
		return nil, toHumaError(err)
	}

	h.track(ctx, domain.EventFeedLoaded, map[string]interface{}{
		"platform": string(req.Platform),
		"endpoint": result.Endpoint,
		"count":    len(result.Articles),
		"country":  req.Country,
		"category": req.Category,
	})

	return &GetHeadlinesOutput{
		Body: responses.HeadlinesResponse{
			Status:   domain.StatusOK,
			Articles: mappers.ToArticleResponses(result.Articles),
			Count:    len(result.Articles),
			Endpoint: result.Endpoint,
		},
	}, nil
}

func (h *HeadlinesHandler) buildRequest(input *GetHeadlinesInput) (domain.HeadlinesRequest, error) {
	req := domain.HeadlinesRequest{
		Country:  strings.ToLower(strings.TrimSpace(input.Country)),
		Category: strings.ToLower(strings.TrimSpace(input.Category)),
		PageSize: input.PageSize,
		Platform: domain.Platform(strings.ToLower(strings.TrimSpace(input.Platform))),
		APIKey:   h.defaults.APIKey,
	}

	if req.Country == "" {
		req.Country = h.defaults.Country
	}
	if req.Category == "" {
		req.Category = h.defaults.Category
	}
	if req.PageSize == 0 {
		req.PageSize = h.defaults.PageSize
	}
	switch req.Platform {
	case "":
		req.Platform = h.defaults.Platform
	case domain.PlatformWeb, domain.PlatformNative:
	default:
		return req, &apperrors.ValidationError{Field: "platform", Message: "must be web or native"}
	}

	return req, nil
}

// track skips delivery when analytics are switched off for the request
func (h *HeadlinesHandler) track(ctx context.Context, name domain.EventName, payload map[string]interface{}) {
	if h.tracker != nil && featureflags.IsEnabled(ctx, featureflags.AnalyticsEnabled) {
		h.tracker.TrackAsync(name, payload)
	}
}
