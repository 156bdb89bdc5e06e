// ABOUTME: Saved-articles handler for the Huma API
// ABOUTME: Lists, saves, removes and toggles bookmarks for the requesting user

package handlers

import (
	"context"
	"net/http"
	"time"

	"headlines-api/api/dto/mappers"
	"headlines-api/api/dto/requests"
	"headlines-api/api/dto/responses"
	"headlines-api/core/domain"
	apperrors "headlines-api/core/errors"
	"headlines-api/core/interfaces"
	"headlines-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// UserHeader selects whose saved list a request operates on
const UserHeader = "X-User-ID"

// SavedService is the saved-articles store plus toggling
type SavedService interface {
	interfaces.SavedService
	Toggle(ctx context.Context, user string, article domain.Article) (bool, error)
}

// SavedHandler handles saved-article requests
type SavedHandler struct {
	service SavedService
	tracker interfaces.AnalyticsTracker
	now     func() time.Time
}

// NewSavedHandler creates a new saved handler. tracker may be nil.
func NewSavedHandler(service SavedService, tracker interfaces.AnalyticsTracker) *SavedHandler {
	return &SavedHandler{
		service: service,
		tracker: tracker,
		now:     time.Now,
	}
}

// RegisterRoutes registers all saved-article routes
func (h *SavedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listSaved",
		Method:      http.MethodGet,
		Path:        "/saved",
		Summary:     "List saved articles",
		Description: "Returns the user's saved articles, most recently published first",
		Tags:        []string{"Saved"},
	}, h.ListSaved)

	huma.Register(api, huma.Operation{
		OperationID:   "saveArticle",
		Method:        http.MethodPost,
		Path:          "/saved",
		Summary:       "Save an article",
		Description:   "Saves an article for later. Saving the same URL again replaces the entry.",
		Tags:          []string{"Saved"},
		DefaultStatus: http.StatusCreated,
	}, h.SaveArticle)

	huma.Register(api, huma.Operation{
		OperationID:   "removeSaved",
		Method:        http.MethodDelete,
		Path:          "/saved",
		Summary:       "Remove a saved article",
		Tags:          []string{"Saved"},
		DefaultStatus: http.StatusNoContent,
	}, h.RemoveSaved)

	huma.Register(api, huma.Operation{
		OperationID: "toggleSaved",
		Method:      http.MethodPost,
		Path:        "/saved/toggle",
		Summary:     "Toggle a saved article",
		Description: "Saves the article when it is not saved yet, otherwise removes it",
		Tags:        []string{"Saved"},
	}, h.ToggleSaved)
}

// ListSavedInput defines the input for the ListSaved operation
type ListSavedInput struct {
	User string `header:"X-User-ID" doc:"User whose saved list is used"`
}

// ListSavedOutput defines the output for the ListSaved operation
type ListSavedOutput struct {
	Body responses.SavedArticlesResponse
}

// ListSaved handles GET /saved
func (h *SavedHandler) ListSaved(ctx context.Context, input *ListSavedInput) (*ListSavedOutput, error) {
	articles, err := h.service.List(ctx, input.User)
	if err != nil {
		return nil, toHumaError(err)
	}

	h.track(ctx, domain.EventSavedOpened, map[string]interface{}{"count": len(articles)})

	return &ListSavedOutput{
		Body: responses.SavedArticlesResponse{
			Articles: mappers.ToArticleResponses(articles),
			Count:    len(articles),
		},
	}, nil
}

// SaveArticleInput defines the input for the SaveArticle and ToggleSaved operations
type SaveArticleInput struct {
	User string `header:"X-User-ID" doc:"User whose saved list is used"`
	Body requests.SaveArticleRequest
}

// SaveArticleOutput defines the output for the SaveArticle and ToggleSaved operations
type SaveArticleOutput struct {
	Body responses.SaveToggleResponse
}

// SaveArticle handles POST /saved
func (h *SavedHandler) SaveArticle(ctx context.Context, input *SaveArticleInput) (*SaveArticleOutput, error) {
	article, err := h.canonical(input.Body)
	if err != nil {
		return nil, toHumaError(err)
	}

	if err := h.service.Save(ctx, input.User, article); err != nil {
		return nil, toHumaError(err)
	}

	h.track(ctx, domain.EventBookmarkAdded, bookmarkPayload(article))

	return &SaveArticleOutput{Body: responses.SaveToggleResponse{ID: article.ID, Saved: true}}, nil
}

// ToggleSaved handles POST /saved/toggle
func (h *SavedHandler) ToggleSaved(ctx context.Context, input *SaveArticleInput) (*SaveArticleOutput, error) {
	article, err := h.canonical(input.Body)
	if err != nil {
		return nil, toHumaError(err)
	}

	saved, err := h.service.Toggle(ctx, input.User, article)
	if err != nil {
		return nil, toHumaError(err)
	}

	if saved {
		h.track(ctx, domain.EventBookmarkAdded, bookmarkPayload(article))
	} else {
		h.track(ctx, domain.EventBookmarkRemoved, bookmarkPayload(article))
	}

	return &SaveArticleOutput{Body: responses.SaveToggleResponse{ID: article.ID, Saved: saved}}, nil
}

// RemoveSavedInput defines the input for the RemoveSaved operation
type RemoveSavedInput struct {
	User string `header:"X-User-ID" doc:"User whose saved list is used"`
	ID   string `query:"id" required:"true" minLength:"1" doc:"Article id, as returned by the API"`
}

// RemoveSaved handles DELETE /saved?id=
func (h *SavedHandler) RemoveSaved(ctx context.Context, input *RemoveSavedInput) (*struct{}, error) {
	if err := h.service.Remove(ctx, input.User, input.ID); err != nil {
		return nil, toHumaError(err)
	}

	h.track(ctx, domain.EventBookmarkRemoved, map[string]interface{}{"id": input.ID})
	return nil, nil
}

func (h *SavedHandler) canonical(req requests.SaveArticleRequest) (domain.Article, error) {
	article, ok := mappers.FromSaveRequest(req, h.now())
	if !ok {
		return domain.Article{}, &apperrors.ValidationError{Field: "article", Message: "a title and a valid url are required"}
	}
	return article, nil
}

func (h *SavedHandler) track(ctx context.Context, name domain.EventName, payload map[string]interface{}) {
	if h.tracker != nil && featureflags.IsEnabled(ctx, featureflags.AnalyticsEnabled) {
		h.tracker.TrackAsync(name, payload)
	}
}

func bookmarkPayload(article domain.Article) map[string]interface{} {
	return map[string]interface{}{
		"id":     article.ID,
		"source": article.SourceName,
	}
}
