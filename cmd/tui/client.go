package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"headlines-api/api/dto/requests"
	"headlines-api/api/dto/responses"
)

const userHeader = "X-User-ID"

// API is the subset of the Headlines API the model uses
type API interface {
	Headlines(country string) (*responses.HeadlinesResponse, error)
	Saved() (*responses.SavedArticlesResponse, error)
	Toggle(article responses.ArticleResponse) (*responses.SaveToggleResponse, error)
}

// APIClient is a thin HTTP client for the Headlines API
type APIClient struct {
	baseURL string
	user    string
	client  *http.Client
}

// NewAPIClient creates a client acting as user
func NewAPIClient(baseURL, user string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		user:    user,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Headlines fetches the top headlines for country
func (c *APIClient) Headlines(country string) (*responses.HeadlinesResponse, error) {
	query := url.Values{"country": {country}}
	var out responses.HeadlinesResponse
	if err := c.do(http.MethodGet, "/headlines?"+query.Encode(), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Saved fetches the user's saved articles
func (c *APIClient) Saved() (*responses.SavedArticlesResponse, error) {
	var out responses.SavedArticlesResponse
	if err := c.do(http.MethodGet, "/saved", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Toggle flips the saved state of article
func (c *APIClient) Toggle(article responses.ArticleResponse) (*responses.SaveToggleResponse, error) {
	body := requests.SaveArticleRequest{
		Title:       article.Title,
		URL:         article.URL,
		SourceName:  article.SourceName,
		PublishedAt: article.PublishedAt,
	}
	var out responses.SaveToggleResponse
	if err := c.do(http.MethodPost, "/saved/toggle", body, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) do(method, path string, body interface{}, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(userHeader, c.user)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
