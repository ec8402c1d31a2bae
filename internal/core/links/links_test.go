package links

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "https://example.com/a", Key("https://Example.com/A#section-2"))
	assert.Equal(t, "https://example.com/a", Key("  https://example.com/a  "))
	assert.Empty(t, Key("#only-fragment"))
}

func TestHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "https://www.elastic.co/blog/x", want: "elastic.co"},
		{in: "https://Reddit.com/r/ecommerce", want: "reddit.com"},
		{in: "http://example.com:8080/a", want: "example.com"},
		{in: "https://old.reddit.com/r/x", want: "old.reddit.com"},
		{in: "not a url", want: ""},
		{in: "://broken", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Host(tt.in), tt.in)
	}
}

func TestExtractFromItems(t *testing.T) {
	items := []domain.Item{
		{
			Title:  "Item one",
			URL:    "https://blog.example.com/one",
			Source: "rss",
			Date:   "2025-08-20T00:00:00Z",
			Citations: []domain.Citation{
				{Title: "Cited", URL: "https://news.example.com/c1", Date: "2025-08-25"},
				{Title: "", URL: "https://news.example.com/c2"},
				{Title: "No URL", URL: "   "},
			},
		},
		{
			Title:     "",
			URL:       "https://example.org/untitled",
			Citations: []domain.Citation{{URL: "https://example.org/bare"}},
		},
		{Title: "Nothing to link"},
	}

	got := ExtractFromItems(items)
	require.Len(t, got, 5)

	itemDate := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Cited", got[0].Title)
	assert.True(t, got[0].Date.Equal(time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "rss", got[0].Source)

	assert.Equal(t, "Item one", got[1].Title, "citation title falls back to item title")
	assert.True(t, got[1].Date.Equal(itemDate), "citation date falls back to item date")

	assert.Equal(t, "Item one", got[2].Title)
	assert.Equal(t, "https://blog.example.com/one", got[2].URL)
	assert.True(t, got[2].Date.Equal(itemDate))

	assert.Equal(t, "https://example.org/bare", got[3].Title, "falls back to URL when untitled")
	assert.False(t, got[3].HasDate())
	assert.Equal(t, "https://example.org/untitled", got[4].Title)
}

func TestDedupe(t *testing.T) {
	in := []domain.Link{
		{Title: "first", URL: "https://example.com/a"},
		{Title: "fragment dup", URL: "https://example.com/a#comments"},
		{Title: "case dup", URL: "HTTPS://EXAMPLE.COM/A"},
		{Title: "empty", URL: ""},
		{Title: "other", URL: "https://example.com/b"},
	}

	once := Dedupe(in)
	require.Len(t, once, 2)
	assert.Equal(t, "first", once[0].Title)
	assert.Equal(t, "other", once[1].Title)

	assert.Equal(t, once, Dedupe(once), "dedupe is idempotent")
}

func TestSortByDateDesc(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC) }

	in := []domain.Link{
		{Title: "undated-1"},
		{Title: "old", Date: day(1)},
		{Title: "new", Date: day(20)},
		{Title: "undated-2"},
		{Title: "mid", Date: day(10)},
	}

	got := SortByDateDesc(in)

	titles := make([]string, 0, len(got))
	for _, l := range got {
		titles = append(titles, l.Title)
	}

	assert.Equal(t, []string{"new", "mid", "old", "undated-1", "undated-2"}, titles)
	assert.Equal(t, "undated-1", in[0].Title, "input is not reordered")
}
