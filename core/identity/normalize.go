// ABOUTME: URL normalization for article identity
// ABOUTME: Strips fragments, tracking parameters and trailing slashes so equivalent URLs compare equal

package identity

import (
	"net/url"
	"strings"
)

// trackingParams are query keys that carry marketing data, not article identity
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"gclid":        {},
	"fbclid":       {},
}

// NormalizeURL returns the canonical form of an article URL.
//
// Text that does not parse as an absolute URL is returned trimmed and lowercased.
// Otherwise the fragment is dropped, scheme and host are lowercased, tracking
// parameters are removed (remaining parameters keep their order) and trailing
// slashes are removed from the path unless the path is "/".
//
// NormalizeURL never fails and is idempotent.
func NormalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.ToLower(trimmed)
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	parsed.RawQuery = filterQuery(parsed.RawQuery)
	parsed.ForceQuery = false

	trimTrailingSlashes(parsed)
	if parsed.Path == "" {
		parsed.Path = "/"
		parsed.RawPath = ""
	}

	return parsed.String()
}

// filterQuery drops tracking parameters and re-encodes the rest in their original order
func filterQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	kept := make([]string, 0)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key := unescapeQueryPart(rawKey)
		if _, tracked := trackingParams[strings.ToLower(key)]; tracked {
			continue
		}

		value := unescapeQueryPart(rawValue)
		kept = append(kept, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	return strings.Join(kept, "&")
}

func unescapeQueryPart(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// trimTrailingSlashes removes literal trailing slashes from the escaped path,
// leaving a lone "/" untouched. An encoded %2F is part of a segment and is kept.
func trimTrailingSlashes(u *url.URL) {
	escaped := u.EscapedPath()
	trimmed := escaped
	for len(trimmed) > 1 && strings.HasSuffix(trimmed, "/") {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if trimmed == escaped {
		return
	}

	path, err := url.PathUnescape(trimmed)
	if err != nil {
		return
	}
	u.Path = path
	u.RawPath = trimmed
}
