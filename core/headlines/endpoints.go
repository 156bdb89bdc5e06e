// ABOUTME: Endpoint selection for top-headlines retrieval
// ABOUTME: Maps platform and credential presence to an ordered list of candidate endpoints

package headlines

import (
	"net/url"
	"strconv"
	"time"

	"headlines-api/core/domain"
	apperrors "headlines-api/core/errors"
)

// EndpointKind distinguishes the local snapshot from the live upstream API
type EndpointKind string

const (
	// EndpointSnapshot is the pre-generated snapshot artifact
	EndpointSnapshot EndpointKind = "snapshot"

	// EndpointLive is the upstream news API
	EndpointLive EndpointKind = "live"
)

// Default endpoint locations
const (
	DefaultLiveURL     = "https://newsapi.org/v2/top-headlines"
	DefaultSnapshotURL = "/news.json"
)

// Endpoint is a candidate source of headlines
type Endpoint struct {
	Kind EndpointKind
	URL  string
}

// SelectEndpoints returns the endpoints to try, in order.
// Web tries the snapshot first and the live API only when a key is available;
// every other platform uses the live API alone.
func SelectEndpoints(platform domain.Platform, hasAPIKey bool, liveURL, snapshotURL string) []Endpoint {
	live := Endpoint{Kind: EndpointLive, URL: liveURL}
	if platform != domain.PlatformWeb {
		return []Endpoint{live}
	}

	endpoints := []Endpoint{{Kind: EndpointSnapshot, URL: snapshotURL}}
	if hasAPIKey {
		endpoints = append(endpoints, live)
	}
	return endpoints
}

// buildRequestURL assembles the query for one attempt against ep.
// The live endpoint requires an API key; its absence is a configuration error.
func buildRequestURL(ep Endpoint, req domain.HeadlinesRequest, fetchSize int, now time.Time) (string, error) {
	target, err := url.Parse(ep.URL)
	if err != nil {
		return "", &apperrors.ConfigurationError{
			Setting: string(ep.Kind) + "_url",
			Message: "Invalid news endpoint URL: " + ep.URL,
		}
	}

	query := target.Query()
	query.Set("country", req.Country)
	query.Set("pageSize", strconv.Itoa(fetchSize))
	if req.Category != "" && req.Category != domain.CategoryAll {
		query.Set("category", req.Category)
	}

	switch ep.Kind {
	case EndpointLive:
		if req.APIKey == "" {
			return "", &apperrors.ConfigurationError{
				Setting: "NEWS_API_KEY",
				Message: "Missing NewsAPI key. Set NEWS_API_KEY or news.api_key in the config file.",
			}
		}
		query.Set("apiKey", req.APIKey)
	case EndpointSnapshot:
		query.Set("_ts", strconv.FormatInt(now.UnixMilli(), 10))
	}

	target.RawQuery = query.Encode()
	return target.String(), nil
}

// overfetchSize is how many raw items to request so filtering still leaves pageSize articles
func overfetchSize(pageSize int) int {
	return min(pageSize*overfetchMultiplier, maxUpstreamPageSize)
}
