package linkfilter

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

var now = time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func urls(in []domain.Link) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		out = append(out, l.URL)
	}

	return out
}

func TestDomainPolicy_Allows(t *testing.T) {
	p := DefaultDomainPolicy()

	tests := []struct {
		name       string
		url        string
		executive  bool
		consulting bool
		social     bool
	}{
		{name: "neutral host", url: "https://example.com/post", executive: true, consulting: true, social: true},
		{name: "denylisted with www", url: "https://www.elastic.co/blog/x"},
		{name: "denylisted subdomain", url: "https://docs.algolia.com/guide"},
		{name: "reddit", url: "https://reddit.com/r/search/1", consulting: true},
		{name: "reddit www", url: "https://www.reddit.com/r/search/1", consulting: true},
		{name: "github subdomain", url: "https://api.github.com/x", consulting: true},
		{name: "twitter", url: "https://twitter.com/a/status/1", consulting: true},
		{name: "lookalike is not a parent", url: "https://notreddit.com/x", executive: true, consulting: true, social: true},
		{name: "no host", url: "not a url"},
		{name: "empty", url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.executive, p.Allows(domain.AudienceExecutive, tt.url), "executive")
			assert.Equal(t, tt.consulting, p.Allows(domain.AudienceConsulting, tt.url), "consulting")
			assert.Equal(t, tt.social, p.Allows(domain.AudienceSocial, tt.url), "social")
		})
	}
}

func TestDomainPolicy_Filter(t *testing.T) {
	p := NewDomainPolicy([]string{" https://Competitor.io/ ", ""}, []string{"reddit.com"})

	in := []domain.Link{
		{URL: "https://a.com/1"},
		{URL: "https://www.competitor.io/pricing"},
		{URL: "https://reddit.com/r/x"},
		{URL: "https://b.com/2"},
	}

	assert.Equal(t, []string{"https://a.com/1", "https://b.com/2"}, urls(p.Filter(domain.AudienceExecutive, in)))
	assert.Equal(t, []string{"https://a.com/1", "https://reddit.com/r/x", "https://b.com/2"},
		urls(p.Filter(domain.AudienceConsulting, in)))
	assert.ElementsMatch(t, []string{"competitor.io"}, p.Denylist())
}

func TestDomainPolicy_DenylistSorted(t *testing.T) {
	p := NewDomainPolicy([]string{"zeta.io", "alpha.com", "mid.net"}, nil)

	for i := 0; i < 5; i++ {
		assert.Equal(t, []string{"alpha.com", "mid.net", "zeta.io"}, p.Denylist())
	}
}

func TestSelectRecent(t *testing.T) {
	base := []domain.Link{
		{URL: "https://a.com/fresh1", Date: daysAgo(1)},
		{URL: "https://a.com/fresh2", Date: daysAgo(3)},
		{URL: "https://a.com/fresh3", Date: daysAgo(10)},
		{URL: "https://a.com/undated1"},
		{URL: "https://a.com/undated2"},
	}

	t.Run("backfill with undated", func(t *testing.T) {
		sel := SelectRecent(base, RecencyWindow{Days: 21, MinNeeded: 5, AllowUndated: true}, now)

		assert.Len(t, sel.Links, 5)
		assert.Equal(t, 3, sel.Fresh)
		assert.Equal(t, 2, sel.Undated)
		assert.True(t, sel.Backfilled())
	})

	t.Run("enough fresh returns only fresh and is not capped", func(t *testing.T) {
		sel := SelectRecent(base, RecencyWindow{Days: 21, MinNeeded: 2, AllowUndated: true}, now)

		assert.Equal(t, []string{"https://a.com/fresh1", "https://a.com/fresh2", "https://a.com/fresh3"}, urls(sel.Links))
		assert.False(t, sel.Backfilled())
	})

	t.Run("undated disallowed falls through to stale", func(t *testing.T) {
		in := append([]domain.Link{
			{URL: "https://a.com/old-far", Date: daysAgo(200)},
			{URL: "https://a.com/old-near", Date: daysAgo(40)},
		}, base...)

		sel := SelectRecent(in, RecencyWindow{Days: 21, MinNeeded: 5}, now)

		assert.Equal(t, []string{
			"https://a.com/fresh1", "https://a.com/fresh2", "https://a.com/fresh3",
			"https://a.com/old-near", "https://a.com/old-far",
		}, urls(sel.Links))
		assert.Equal(t, 2, sel.Stale)
		assert.Zero(t, sel.Undated)
	})

	t.Run("stale appended after undated when still short", func(t *testing.T) {
		in := []domain.Link{
			{URL: "https://a.com/undated"},
			{URL: "https://a.com/old", Date: daysAgo(60)},
			{URL: "https://a.com/fresh", Date: daysAgo(2)},
		}

		sel := SelectRecent(in, RecencyWindow{Days: 21, MinNeeded: 6, AllowUndated: true}, now)

		assert.Equal(t, []string{"https://a.com/fresh", "https://a.com/undated", "https://a.com/old"}, urls(sel.Links))
	})

	t.Run("duplicates removed", func(t *testing.T) {
		in := []domain.Link{
			{URL: "https://a.com/x", Date: daysAgo(1)},
			{URL: "https://a.com/X#frag", Date: daysAgo(2)},
			{URL: "https://a.com/x"},
		}

		sel := SelectRecent(in, RecencyWindow{Days: 21, MinNeeded: 3, AllowUndated: true}, now)

		assert.Equal(t, []string{"https://a.com/x"}, urls(sel.Links))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SelectRecent(nil, RecencyWindow{Days: 21, MinNeeded: 5, AllowUndated: true}, now).Links)
	})
}

func TestPickTop(t *testing.T) {
	var in []domain.Link
	for i := 0; i < 12; i++ {
		in = append(in, domain.Link{URL: fmt.Sprintf("https://a.com/%d", i)})
	}

	assert.Len(t, PickTop(in, DefaultExecutiveCap), 8)
	assert.Len(t, PickTop(in, DefaultConsultingCap), 10)
	assert.Len(t, PickTop(in, DefaultSocialCap), 6)
	assert.Len(t, PickTop(in[:3], 6), 3)
	assert.Empty(t, PickTop(in, 0))
	assert.Empty(t, PickTop(in, -1))
	assert.Equal(t, "https://a.com/0", PickTop(in, 1)[0].URL)
}

func TestWithDateSuffix(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	got := WithDateSuffix([]domain.Link{
		{Title: "Dated", URL: "https://a.com/1", Date: time.Date(2025, 8, 24, 20, 0, 0, 0, time.UTC)},
		{Title: "Undated", URL: "https://a.com/2"},
		{URL: "https://a.com/3"},
	}, ist)

	require.Len(t, got, 3)
	assert.Equal(t, domain.SectionLink{Title: "Dated (25 Aug 2025)", URL: "https://a.com/1"}, got[0])
	assert.Equal(t, "Undated", got[1].Title)
	assert.Equal(t, "https://a.com/3", got[2].Title)
}
