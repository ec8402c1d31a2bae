// Package dedup removes duplicate items and orders them for audience content.
//
// Two different identities exist for items and they are kept apart on purpose:
// the relevance filter drops repeats by the (source, title, url) hash, while the
// audience pass here drops repeats by locator (url, else title). The first feeds
// the prompt payload, the second feeds the further-reading link pool.
package dedup

import (
	"sort"
	"strings"

	"github.com/lueurxax/search-intel-brief/internal/core/dates"
	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// RankByRecency returns a copy ordered by date, newest first.
// Undated items rank as the epoch, after every dated item; ties keep input order.
func RankByRecency(items []domain.Item) []domain.Item {
	type ranked struct {
		item domain.Item
		at   int64
	}

	tmp := make([]ranked, len(items))
	for i, it := range items {
		tmp[i] = ranked{item: it, at: dates.OrEpoch(dates.Parse(it.Date)).UnixNano()}
	}

	sort.SliceStable(tmp, func(i, j int) bool {
		return tmp[i].at > tmp[j].at
	})

	out := make([]domain.Item, len(tmp))
	for i, r := range tmp {
		out[i] = r.item
	}

	return out
}

// LocatorKey is the audience-content identity: the URL, else the title, lower-cased.
func LocatorKey(it domain.Item) string {
	key := strings.TrimSpace(it.URL)
	if key == "" {
		key = strings.TrimSpace(it.Title)
	}

	return strings.ToLower(key)
}

// DedupeByLocator keeps the first item per LocatorKey. Items with neither URL nor
// title are dropped.
func DedupeByLocator(items []domain.Item) []domain.Item {
	return Deduplicate(items, LocatorKey)
}

// RankForAudience orders items by recency and then removes locator duplicates,
// so the freshest copy of a repeated story wins.
func RankForAudience(items []domain.Item) []domain.Item {
	return DedupeByLocator(RankByRecency(items))
}
