package identity

import (
	"strconv"
	"unicode/utf16"

	"headlines-api/core/domain"
)

const (
	// GeneratedIDPrefix marks ids derived from title and date instead of a URL
	GeneratedIDPrefix = "generated:"

	untitledSentinel = "untitled"
	noDateSentinel   = "no-date"
)

// DeriveID returns the stable identifier of an article.
// The normalized URL is the id. Articles without a usable URL get a generated id
// hashed from title and publication date, so two such articles sharing both
// values collide.
func DeriveID(article domain.RawArticle) string {
	rawURL, _ := domain.NonEmpty(article.URL)
	if normalized := NormalizeURL(rawURL); normalized != "" {
		return normalized
	}

	title, ok := domain.NonEmpty(article.Title)
	if !ok {
		title = untitledSentinel
	}
	publishedAt, ok := domain.NonEmpty(article.PublishedAt)
	if !ok {
		publishedAt = noDateSentinel
	}

	return GeneratedIDPrefix + hashString(title+"|"+publishedAt)
}

// hashString is a 32-bit polynomial rolling hash (h*31 + c) over UTF-16 code
// units, rendered as the hex of its absolute value.
func hashString(input string) string {
	var hash int32
	for _, unit := range utf16.Encode([]rune(input)) {
		hash = hash*31 + int32(unit)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 16)
}
