package headlines

import (
	"encoding/json"
	"strings"

	"headlines-api/core/domain"
	apperrors "headlines-api/core/errors"
)

const (
	msgHTMLInsteadOfJSON = "News endpoint returned HTML instead of JSON."
	msgInvalidResponse   = "News endpoint returned an invalid response."
	msgFetchFailed       = "Failed to fetch top headlines."
	msgTimedOut          = "Request timed out."
)

// parsePayload decodes a headlines body. Bodies that are not JSON are reported
// as HTML when the content type or the body itself looks like markup.
func parsePayload(ep Endpoint, statusCode int, contentType string, body []byte) (*domain.HeadlinesPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		if !json.Valid(body) {
			message := msgInvalidResponse
			if looksLikeHTML(contentType, body) {
				message = msgHTMLInsteadOfJSON
			}
			return nil, &apperrors.ProtocolError{Endpoint: string(ep.Kind), StatusCode: statusCode, Message: message}
		}
		// Valid JSON that is not an object carries no status
		fields = map[string]json.RawMessage{}
	}

	payload := &domain.HeadlinesPayload{}
	decodeField(fields, "status", &payload.Status)
	decodeField(fields, "message", &payload.Message)

	if statusCode < 200 || statusCode > 299 || payload.Status != domain.StatusOK {
		message := payload.Message
		if message == "" {
			message = msgFetchFailed
		}
		return nil, &apperrors.ProtocolError{Endpoint: string(ep.Kind), StatusCode: statusCode, Message: message}
	}

	articles, ok := decodeArticles(fields["articles"])
	if !ok {
		return nil, &apperrors.ProtocolError{Endpoint: string(ep.Kind), StatusCode: statusCode, Message: msgInvalidResponse}
	}
	payload.Articles = articles
	return payload, nil
}

// decodeArticles decodes the articles array. Elements that are not objects are skipped.
// A missing or null array yields no articles; any other non-array value is invalid.
func decodeArticles(raw json.RawMessage) ([]domain.RawArticle, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, false
	}

	articles := make([]domain.RawArticle, 0, len(elements))
	for _, element := range elements {
		var article domain.RawArticle
		if err := json.Unmarshal(element, &article); err != nil {
			continue
		}
		articles = append(articles, article)
	}
	return articles, true
}

func decodeField(fields map[string]json.RawMessage, key string, dst *string) {
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, dst)
	}
}

func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	return strings.HasPrefix(strings.TrimLeft(string(body), " \t\r\n"), "<")
}
