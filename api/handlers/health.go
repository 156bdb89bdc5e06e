package handlers

import (
	"context"
	"net/http"

	"headlines-api/api/dto/responses"
	"headlines-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// HealthHandler reports liveness and enabled features
type HealthHandler struct {
	flags featureflags.Manager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(flags featureflags.Manager) *HealthHandler {
	if flags == nil {
		flags = featureflags.NewDefaultManager()
	}
	return &HealthHandler{flags: flags}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	features := make(map[string]bool)
	for flag, enabled := range h.flags.GetAllFlags() {
		features[string(flag)] = enabled
	}
	return &HealthOutput{
		Body: responses.HealthResponse{Status: "ok", Features: features},
	}, nil
}
