// ABOUTME: Top-headlines proxy keeps the news API key on the server
// ABOUTME: Passes country and pageSize through and relays the upstream status and body

package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

const (
	proxyDefaultCountry  = "us"
	proxyDefaultPageSize = "10"
	proxyTimeout         = 10 * time.Second
	maxProxyBodyBytes    = 2 << 20

	msgProxyMissingKey = "Server missing NEWS_API_KEY"
	msgProxyFailed     = "Failed to fetch headlines"
)

// ProxyHandler forwards top-headline requests to the live news API
type ProxyHandler struct {
	client  interfaces.HTTPClient
	liveURL string
	apiKey  string
	logger  interfaces.Logger
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(client interfaces.HTTPClient, liveURL, apiKey string, logger interfaces.Logger) *ProxyHandler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &ProxyHandler{
		client:  client,
		liveURL: liveURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// RegisterRoutes registers the proxy route
func (h *ProxyHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "proxyTopHeadlines",
		Method:      http.MethodGet,
		Path:        "/proxy/top-headlines",
		Summary:     "Proxy the live top-headlines API",
		Description: "Forwards the request to the news API using the server's key and relays the response unchanged",
		Tags:        []string{"Proxy"},
	}, h.ProxyTopHeadlines)
}

// ProxyInput defines the input for the ProxyTopHeadlines operation
type ProxyInput struct {
	Country  string `query:"country" doc:"Country code, default us"`
	PageSize string `query:"pageSize" doc:"Page size, default 10"`
}

// ProxyOutput defines the output for the ProxyTopHeadlines operation
type ProxyOutput struct {
	Status      int
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// ProxyTopHeadlines handles GET /proxy/top-headlines
func (h *ProxyHandler) ProxyTopHeadlines(ctx context.Context, input *ProxyInput) (*ProxyOutput, error) {
	if h.apiKey == "" {
		return proxyError(msgProxyMissingKey), nil
	}

	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = proxyDefaultCountry
	}
	pageSize := strings.TrimSpace(input.PageSize)
	if pageSize == "" {
		pageSize = proxyDefaultPageSize
	}

	params := url.Values{}
	params.Set("country", country)
	params.Set("pageSize", pageSize)
	params.Set("apiKey", h.apiKey)

	reqCtx, cancel := context.WithTimeout(ctx, proxyTimeout)
	defer cancel()

	resp, err := h.client.Get(reqCtx, h.liveURL+"?"+params.Encode())
	if err != nil {
		h.logger.Error("Proxy request failed", map[string]interface{}{
			"error": err.Error(),
		})
		return proxyError(msgProxyFailed), nil
	}
	body := resp.Body()
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxProxyBodyBytes))
	if err != nil || !json.Valid(data) {
		h.logger.Error("Proxy received an unusable response", map[string]interface{}{
			"status_code": resp.StatusCode(),
		})
		return proxyError(msgProxyFailed), nil
	}

	return &ProxyOutput{
		Status:      resp.StatusCode(),
		ContentType: "application/json",
		Body:        data,
	}, nil
}

func proxyError(message string) *ProxyOutput {
	data, _ := json.Marshal(domain.HeadlinesPayload{Status: domain.StatusError, Message: message})
	return &ProxyOutput{
		Status:      http.StatusInternalServerError,
		ContentType: "application/json",
		Body:        data,
	}
}
