package identity

import (
	"strings"
	"testing"
	"time"

	"headlines-api/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 2, 22, 8, 30, 0, 0, time.UTC)

func raw(title, url string) domain.RawArticle {
	a := domain.RawArticle{}
	if title != "" {
		a.Title = domain.Some(title)
	}
	if url != "" {
		a.URL = domain.Some(url)
	}
	return a
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"strips tracking params and lowercases host", "https://Example.com/news/story?utm_source=x&id=123", "https://example.com/news/story?id=123"},
		{"keeps param order", "https://site.com/a?b=2&utm_medium=m&a=1", "https://site.com/a?b=2&a=1"},
		{"tracking keys are case insensitive", "https://site.com/a?UTM_Source=x&GCLID=1&FbClid=2", "https://site.com/a"},
		{"drops fragment", "https://site.com/a#comments", "https://site.com/a"},
		{"strips trailing slash", "https://site.com/a/", "https://site.com/a"},
		{"strips repeated trailing slashes", "https://site.com/a//", "https://site.com/a"},
		{"encoded slash is not a path separator", "https://s.com/a%2F", "https://s.com/a%2F"},
		{"strips literal slash after encoded slash", "https://s.com/a%2F/", "https://s.com/a%2F"},
		{"encoded segment kept when trimming", "https://s.com/a%2Fb/", "https://s.com/a%2Fb"},
		{"keeps root path", "https://site.com/", "https://site.com/"},
		{"adds root path", "https://site.com", "https://site.com/"},
		{"lowercases scheme", "HTTPS://SITE.com/Path", "https://site.com/Path"},
		{"path case preserved", "https://site.com/CaseSensitive?Q=V", "https://site.com/CaseSensitive?Q=V"},
		{"trims surrounding whitespace", "  https://site.com/a  ", "https://site.com/a"},
		{"unparseable text is lowercased", "Not A URL", "not a url"},
		{"relative path is not a URL", "/News/Story", "/news/story"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.input))
		})
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	inputs := []string{
		"https://Example.com/news/story?utm_source=x&id=123",
		"https://site.com/a//",
		"https://site.com/search?q=hello world&lang=en",
		"https://site.com/search?q=a+b&x",
		"https://site.com/a%2Fb/",
		"http://user@Host.example:8080/x/?utm_term=1#frag",
		"HTTP://",
		"Not A URL",
		"mailto:Someone@Example.com",
		"",
	}

	for _, input := range inputs {
		once := NormalizeURL(input)
		assert.Equal(t, once, NormalizeURL(once), "input %q", input)
	}
}

func TestNormalizeURL_EncodedSlashKeepsResourcesDistinct(t *testing.T) {
	assert.NotEqual(t, NormalizeURL("https://s.com/a%2F"), NormalizeURL("https://s.com/a"))
	assert.NotEqual(t, DeriveID(raw("Story", "https://s.com/a%2F")), DeriveID(raw("Story", "https://s.com/a")))
}

func TestNormalizeURL_EquivalentURLsCollapse(t *testing.T) {
	variants := []string{
		"https://example.com/a?id=1",
		"HTTPS://EXAMPLE.COM/a?id=1",
		"https://example.com/a/?id=1",
		"https://example.com/a?id=1#top",
		"https://example.com/a?utm_campaign=y&id=1&fbclid=z",
	}

	for _, v := range variants {
		assert.Equal(t, "https://example.com/a?id=1", NormalizeURL(v), "variant %q", v)
	}
}

func TestDeriveID_TrackingParamEquivalence(t *testing.T) {
	a := domain.RawArticle{
		Title:       domain.Some("A"),
		URL:         domain.Some("https://Example.com/a?utm_source=x&id=1"),
		PublishedAt: domain.Some("2026-02-22T00:00:00Z"),
	}
	b := domain.RawArticle{
		Title:       domain.Some("A"),
		URL:         domain.Some("https://example.com/a?id=1&utm_campaign=y"),
		PublishedAt: domain.Some("2026-02-22T00:00:00Z"),
	}

	assert.Equal(t, DeriveID(a), DeriveID(b))
	assert.Equal(t, "https://example.com/a?id=1", DeriveID(a))
}

func TestDeriveID_GeneratedWhenURLMissing(t *testing.T) {
	article := domain.RawArticle{
		Title:       domain.Some("Breaking"),
		PublishedAt: domain.Some("2026-02-22T00:00:00Z"),
	}

	id := DeriveID(article)

	assert.True(t, strings.HasPrefix(id, GeneratedIDPrefix))
	assert.Equal(t, id, DeriveID(article), "generated ids must be deterministic")
	assert.Equal(t, GeneratedIDPrefix+hashString("Breaking|2026-02-22T00:00:00Z"), id)
}

func TestDeriveID_SentinelsForMissingFields(t *testing.T) {
	id := DeriveID(domain.RawArticle{})

	assert.Equal(t, GeneratedIDPrefix+hashString("untitled|no-date"), id)
}

func TestDeriveID_DifferentTitlesDiffer(t *testing.T) {
	a := DeriveID(domain.RawArticle{Title: domain.Some("One")})
	b := DeriveID(domain.RawArticle{Title: domain.Some("Two")})

	assert.NotEqual(t, a, b)
}

func TestHashString(t *testing.T) {
	assert.Equal(t, "0", hashString(""))
	assert.Equal(t, "61", hashString("a"))
	assert.Equal(t, "c21", hashString("ab"))
	// order sensitive
	assert.NotEqual(t, hashString("ab"), hashString("ba"))
}

func TestToCanonical_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		article domain.RawArticle
	}{
		{"removed title", raw("[Removed]", "https://s.com/1")},
		{"missing url", raw("No URL", "")},
		{"missing title", raw("", "https://s.com/1")},
		{"blank url", domain.RawArticle{Title: domain.Some("Blank"), URL: domain.Some("   ")}},
		{"empty title", domain.RawArticle{Title: domain.Some(""), URL: domain.Some("https://s.com/1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ToCanonical(tt.article, fixedNow)
			assert.False(t, ok)
		})
	}
}

func TestToCanonical_AppliesDefaults(t *testing.T) {
	article, ok := ToCanonical(raw("Valid", "https://Site.com/story/?utm_source=feed"), fixedNow)
	require.True(t, ok)

	assert.Equal(t, "https://site.com/story", article.ID)
	assert.Equal(t, "https://site.com/story", article.URL)
	assert.Equal(t, "Valid", article.Title)
	assert.Equal(t, domain.UnknownSource, article.SourceName)
	assert.Equal(t, "2026-02-22T08:30:00.000Z", article.PublishedAt)
}

func TestToCanonical_KeepsSourceAndDate(t *testing.T) {
	in := domain.RawArticle{
		Title:       domain.Some("Valid"),
		URL:         domain.Some("https://site.com/2"),
		PublishedAt: domain.Some("2026-02-21T10:00:00Z"),
		Source:      domain.Some(domain.RawSource{Name: domain.Some("Site")}),
	}

	article, ok := ToCanonical(in, fixedNow)
	require.True(t, ok)

	assert.Equal(t, "Site", article.SourceName)
	assert.Equal(t, "2026-02-21T10:00:00Z", article.PublishedAt)
}

func TestMapAndDedup_DropsDuplicates(t *testing.T) {
	items := MapAndDedup([]domain.RawArticle{
		raw("A", "https://s.com/x?utm_source=a"),
		raw("A2", "https://s.com/x"),
	}, 10, fixedNow)

	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Title, "first occurrence wins")
}

func TestMapAndDedup_CapsByPageSize(t *testing.T) {
	items := MapAndDedup([]domain.RawArticle{
		raw("[Removed]", "https://site.com/1"),
		raw("Missing url", ""),
		{Title: domain.Some("Valid 1"), URL: domain.Some("https://site.com/2"), Source: domain.Some(domain.RawSource{Name: domain.Some("Site")})},
		raw("Valid 2", "https://site.com/3"),
		raw("Valid 3", "https://site.com/4"),
		raw("Valid 4", "https://site.com/5"),
	}, 1, fixedNow)

	require.Len(t, items, 1)
	assert.Equal(t, "Valid 1", items[0].Title)
	assert.Equal(t, "https://site.com/2", items[0].ID)
	assert.Equal(t, "Site", items[0].SourceName)
}

func TestMapAndDedup_PreservesOrder(t *testing.T) {
	items := MapAndDedup([]domain.RawArticle{
		raw("C", "https://s.com/c"),
		raw("A", "https://s.com/a"),
		raw("C again", "https://s.com/c/"),
		raw("B", "https://s.com/b"),
	}, 10, fixedNow)

	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"C", "A", "B"}, titles)
}

func TestMapAndDedup_UniqueIDs(t *testing.T) {
	items := MapAndDedup([]domain.RawArticle{
		raw("1", "https://s.com/1"),
		raw("1b", "HTTPS://S.COM/1#x"),
		raw("2", "https://s.com/2?gclid=abc"),
		raw("2b", "https://s.com/2"),
	}, 10, fixedNow)

	seen := map[string]bool{}
	for _, item := range items {
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
	assert.Len(t, items, 2)
}

func TestMapAndDedup_NonPositivePageSize(t *testing.T) {
	items := MapAndDedup([]domain.RawArticle{raw("A", "https://s.com/a")}, 0, fixedNow)

	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestMapAndDedup_EmptyInput(t *testing.T) {
	assert.Empty(t, MapAndDedup(nil, 10, fixedNow))
}
