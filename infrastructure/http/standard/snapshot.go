// ABOUTME: HTTP client that answers the server's own snapshot URL from local storage
// ABOUTME: Other URLs are forwarded to the wrapped client

package standard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"
)

// SnapshotReader loads a stored artifact by key
type SnapshotReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// SnapshotClient serves GETs for one snapshot URL from a store without a network round trip
type SnapshotClient struct {
	next        interfaces.HTTPClient
	snapshotURL *url.URL
	store       SnapshotReader
	key         string
}

// NewSnapshotClient routes requests whose scheme, host and path match snapshotURL
// to store[key] and everything else to next
func NewSnapshotClient(next interfaces.HTTPClient, snapshotURL string, store SnapshotReader, key string) (*SnapshotClient, error) {
	parsed, err := url.Parse(snapshotURL)
	if err != nil {
		return nil, err
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, errors.New("snapshot URL must be absolute")
	}
	return &SnapshotClient{next: next, snapshotURL: parsed, store: store, key: key}, nil
}

// URL returns the snapshot URL this client answers locally
func (c *SnapshotClient) URL() string {
	return c.snapshotURL.String()
}

// Get serves the snapshot URL from the store and forwards other requests
func (c *SnapshotClient) Get(ctx context.Context, rawURL string) (interfaces.Response, error) {
	target, err := url.Parse(rawURL)
	if err != nil || !c.matches(target) {
		return c.next.Get(ctx, rawURL)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := c.store.Get(ctx, c.key)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return jsonResponse(http.StatusNotFound, domain.HeadlinesPayload{
			Status:  domain.StatusError,
			Message: "News snapshot has not been generated.",
		}), nil
	case err != nil:
		return nil, err
	}

	return &httpResponse{
		statusCode: http.StatusOK,
		body:       io.NopCloser(bytes.NewReader(data)),
		headers:    http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func (c *SnapshotClient) matches(target *url.URL) bool {
	return target.Scheme == c.snapshotURL.Scheme &&
		target.Host == c.snapshotURL.Host &&
		target.Path == c.snapshotURL.Path
}

func jsonResponse(status int, payload domain.HeadlinesPayload) *httpResponse {
	data, _ := json.Marshal(payload)
	return &httpResponse{
		statusCode: status,
		body:       io.NopCloser(bytes.NewReader(data)),
		headers:    http.Header{"Content-Type": []string{"application/json"}},
	}
}
