// Package filters implements the keyword relevance filter and the score ranking
// that produce the prompt payload for every audience.
//
// An item is kept when:
//   - its normalized title is non-empty
//   - it matches at least one include keyword (when includes are configured)
//   - it matches no exclude keyword
//   - its identity hash has not been seen earlier in the same batch
package filters

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/platform/observability"
)

// DefaultTopN is the number of ranked items handed to the narrative stage.
const DefaultTopN = 30

// Reason codes reported for dropped items.
const (
	ReasonEmptyTitle  = "filter_empty_title"
	ReasonExclude     = "filter_exclude"
	ReasonIncludeMiss = "filter_include_miss"
	ReasonDuplicate   = "filter_duplicate"
	ReasonTruncated   = "filter_truncated"
)

// Relevance applies include/exclude keyword matching and ranks the survivors.
type Relevance struct {
	include []string
	exclude []string
	topN    int
	caser   cases.Caser
	logger  *zerolog.Logger
}

// New creates a Relevance filter. Blank keywords are ignored and topN <= 0 means DefaultTopN.
func New(include, exclude []string, topN int, logger *zerolog.Logger) *Relevance {
	if topN <= 0 {
		topN = DefaultTopN
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	caser := cases.Fold()

	return &Relevance{
		include: foldKeywords(caser, include),
		exclude: foldKeywords(caser, exclude),
		topN:    topN,
		caser:   caser,
		logger:  logger,
	}
}

func foldKeywords(caser cases.Caser, keywords []string) []string {
	out := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}

		out = append(out, caser.String(kw))
	}

	return out
}

// IsRelevant reports whether text passes the keyword rules.
func (r *Relevance) IsRelevant(text string) bool {
	return r.reason(text) == ""
}

// FilterReason returns the reason code for rejecting text, or "" when it is relevant.
func (r *Relevance) FilterReason(text string) string {
	return r.reason(text)
}

func (r *Relevance) reason(text string) string {
	folded := r.caser.String(text)

	for _, kw := range r.exclude {
		if strings.Contains(folded, kw) {
			return ReasonExclude
		}
	}

	if len(r.include) == 0 {
		return ""
	}

	for _, kw := range r.include {
		if strings.Contains(folded, kw) {
			return ""
		}
	}

	return ReasonIncludeMiss
}

// FilterAndRank normalizes, filters, hashes, scores and ranks items.
// The result holds at most topN items ordered by score descending; ties keep input order.
func (r *Relevance) FilterAndRank(items []domain.Item) []domain.Item {
	kept := make([]domain.Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	dropped := make(map[string]int)

	for _, raw := range items {
		it := domain.NormalizeItem(raw)

		if it.Title == "" {
			dropped[ReasonEmptyTitle]++
			continue
		}

		if reason := r.reason(it.RelevanceText()); reason != "" {
			dropped[reason]++
			continue
		}

		it.ID = domain.ComputeID(it)
		if _, dup := seen[it.ID]; dup {
			dropped[ReasonDuplicate]++
			continue
		}

		seen[it.ID] = struct{}{}

		it.Score = domain.ScoreItem(it)
		kept = append(kept, it)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	truncated := 0
	if len(kept) > r.topN {
		truncated = len(kept) - r.topN
		kept = kept[:r.topN]
	}

	dropped[ReasonTruncated] = truncated
	for reason, n := range dropped {
		observability.RelevanceDropped.WithLabelValues(reason).Add(float64(n))
	}

	observability.ItemsKept.Set(float64(len(kept)))

	r.logger.Info().
		Int("input", len(items)).
		Int("kept", len(kept)).
		Int(ReasonEmptyTitle, dropped[ReasonEmptyTitle]).
		Int(ReasonExclude, dropped[ReasonExclude]).
		Int(ReasonIncludeMiss, dropped[ReasonIncludeMiss]).
		Int(ReasonDuplicate, dropped[ReasonDuplicate]).
		Int(ReasonTruncated, truncated).
		Msg("Relevance filter complete")

	return kept
}
