// ABOUTME: Snapshot handler serves the generated news.json artifact
// ABOUTME: Responds in the upstream {status, articles} shape so web clients can use it as an endpoint

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

const (
	msgSnapshotMissing = "News snapshot has not been generated."
	msgSnapshotInvalid = "News snapshot is corrupt."
)

// SnapshotReader loads a stored artifact by key
type SnapshotReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// SnapshotHandler serves the latest snapshot
type SnapshotHandler struct {
	store  SnapshotReader
	key    string
	logger interfaces.Logger
}

// NewSnapshotHandler creates a handler serving the artifact stored under key
func NewSnapshotHandler(store SnapshotReader, key string, logger interfaces.Logger) *SnapshotHandler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &SnapshotHandler{store: store, key: key, logger: logger}
}

// RegisterRoutes registers the snapshot route
func (h *SnapshotHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSnapshot",
		Method:      http.MethodGet,
		Path:        "/news.json",
		Summary:     "Get the headlines snapshot",
		Description: "Returns the pre-generated headlines snapshot in the upstream response shape",
		Tags:        []string{"Headlines"},
	}, h.GetSnapshot)
}

// GetSnapshotInput defines the input for the GetSnapshot operation.
// The snapshot is generated for one country; country and _ts are accepted for
// compatibility with the live endpoint and only pageSize changes the response.
type GetSnapshotInput struct {
	Country   string `query:"country"`
	PageSize  int    `query:"pageSize" minimum:"0" maximum:"100"`
	Timestamp string `query:"_ts" doc:"Cache buster, ignored"`
}

// GetSnapshotOutput defines the output for the GetSnapshot operation
type GetSnapshotOutput struct {
	Status       int
	CacheControl string `header:"Cache-Control"`
	Body         domain.HeadlinesPayload
}

// GetSnapshot handles GET /news.json
func (h *SnapshotHandler) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*GetSnapshotOutput, error) {
	data, err := h.store.Get(ctx, h.key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snapshotError(http.StatusNotFound, msgSnapshotMissing), nil
		}
		h.logger.Error("Failed to read snapshot", map[string]interface{}{
			"key":   h.key,
			"error": err.Error(),
		})
		return nil, huma.Error500InternalServerError("Failed to read snapshot", err)
	}

	var payload domain.HeadlinesPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.logger.Error("Snapshot is not valid JSON", map[string]interface{}{
			"key":   h.key,
			"error": err.Error(),
		})
		return snapshotError(http.StatusInternalServerError, msgSnapshotInvalid), nil
	}

	if input.PageSize > 0 && len(payload.Articles) > input.PageSize {
		payload.Articles = payload.Articles[:input.PageSize]
	}
	if payload.Articles == nil {
		payload.Articles = []domain.RawArticle{}
	}

	return &GetSnapshotOutput{
		Status:       http.StatusOK,
		CacheControl: "no-cache",
		Body:         payload,
	}, nil
}

func snapshotError(status int, message string) *GetSnapshotOutput {
	return &GetSnapshotOutput{
		Status:       status,
		CacheControl: "no-store",
		Body:         domain.HeadlinesPayload{Status: domain.StatusError, Message: message},
	}
}
