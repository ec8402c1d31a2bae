// Package links turns curated items into further-reading links and provides
// URL-identity helpers shared by the audience filters.
package links

import (
	"sort"
	"strings"

	"github.com/lueurxax/search-intel-brief/internal/core/dates"
	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// ExtractFromItems emits one link per citation and one for each item URL.
// Citation titles fall back to the item title and then the URL; citation dates
// fall back to the item date. Links without a URL are never emitted.
func ExtractFromItems(items []domain.Item) []domain.Link {
	var out []domain.Link

	for _, it := range items {
		itemDate := dates.Parse(it.Date)

		for _, c := range it.Citations {
			u := strings.TrimSpace(c.URL)
			if u == "" {
				continue
			}

			date := dates.Parse(c.Date)
			if date.IsZero() {
				date = itemDate
			}

			out = append(out, domain.Link{
				Title:  firstNonBlank(c.Title, it.Title, u),
				URL:    u,
				Date:   date,
				Source: it.Source,
			})
		}

		if u := strings.TrimSpace(it.URL); u != "" {
			out = append(out, domain.Link{
				Title:  firstNonBlank(it.Title, u),
				URL:    u,
				Date:   itemDate,
				Source: it.Source,
			})
		}
	}

	return out
}

// Dedupe keeps the first link per Key. Links with an empty URL are dropped.
func Dedupe(in []domain.Link) []domain.Link {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Link, 0, len(in))

	for _, l := range in {
		key := Key(l.URL)
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		out = append(out, l)
	}

	return out
}

// SortByDateDesc returns a copy ordered newest first; undated links sort last.
// Ties keep their input order.
func SortByDateDesc(in []domain.Link) []domain.Link {
	out := make([]domain.Link, len(in))
	copy(out, in)

	sort.SliceStable(out, func(i, j int) bool {
		return dates.OrEpoch(out[i].Date).After(dates.OrEpoch(out[j].Date))
	})

	return out
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}
