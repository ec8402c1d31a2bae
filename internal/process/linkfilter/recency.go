package linkfilter

import (
	"sort"
	"time"

	"github.com/lueurxax/search-intel-brief/internal/core/dates"
	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/core/links"
)

// RecencyWindow configures SelectRecent for one audience.
type RecencyWindow struct {
	Days         int  `yaml:"recency_days"`
	MinNeeded    int  `yaml:"min_links"`
	AllowUndated bool `yaml:"allow_undated"`
}

// Selection is the outcome of SelectRecent.
type Selection struct {
	Links []domain.Link

	// Fresh, Undated and Stale count the links taken from each tier.
	Fresh   int
	Undated int
	Stale   int
}

// Backfilled reports whether any tier beyond the fresh one was used.
func (s Selection) Backfilled() bool {
	return s.Undated > 0 || s.Stale > 0
}

// SelectRecent prefers links dated inside the window. When fewer than MinNeeded
// fresh links exist it backfills with undated links (if allowed) and then with
// older links, most recent first. The result is deduplicated but not capped to
// MinNeeded; display caps are applied later by PickTop.
func SelectRecent(in []domain.Link, w RecencyWindow, now time.Time) Selection {
	var fresh, undated, stale []domain.Link

	for _, l := range in {
		switch {
		case !l.HasDate():
			undated = append(undated, l)
		case dates.WithinDays(l.Date, w.Days, now):
			fresh = append(fresh, l)
		default:
			stale = append(stale, l)
		}
	}

	fresh = links.Dedupe(fresh)
	if len(fresh) >= w.MinNeeded {
		return Selection{Links: fresh, Fresh: len(fresh)}
	}

	sel := Selection{Fresh: len(fresh)}
	pool := append([]domain.Link{}, fresh...)

	if w.AllowUndated {
		pool = append(pool, undated...)
	}

	if len(links.Dedupe(pool)) < w.MinNeeded {
		sort.SliceStable(stale, func(i, j int) bool {
			return stale[i].Date.After(stale[j].Date)
		})

		pool = append(pool, stale...)
	}

	sel.Links = links.Dedupe(pool)

	for _, l := range sel.Links[sel.Fresh:] {
		if l.HasDate() {
			sel.Stale++
		} else {
			sel.Undated++
		}
	}

	return sel
}
