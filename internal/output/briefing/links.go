package briefing

import (
	"time"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/core/links"
	"github.com/lueurxax/search-intel-brief/internal/platform/observability"
	"github.com/lueurxax/search-intel-brief/internal/process/dedup"
	"github.com/lueurxax/search-intel-brief/internal/process/linkfilter"
)

// buildLinkPool extracts the shared further-reading pool, newest first. The
// pool is read-only once built.
func buildLinkPool(ranked []domain.Item) []domain.Link {
	audienceItems := dedup.RankForAudience(ranked)

	return links.SortByDateDesc(links.Dedupe(links.ExtractFromItems(audienceItems)))
}

// selectLinks applies the audience host policy, the recency window with backfill,
// the display cap and the date suffix, in that order.
func (b *Builder) selectLinks(a domain.Audience, cfg AudienceConfig, pool []domain.Link, now time.Time) []domain.SectionLink {
	allowed := b.policy.Filter(a, pool)
	sel := linkfilter.SelectRecent(allowed, cfg.Window, now)

	observability.LinkSelectionTier.WithLabelValues(a.String(), observability.TierFresh).Add(float64(sel.Fresh))
	observability.LinkSelectionTier.WithLabelValues(a.String(), observability.TierUndated).Add(float64(sel.Undated))
	observability.LinkSelectionTier.WithLabelValues(a.String(), observability.TierStale).Add(float64(sel.Stale))

	if sel.Backfilled() {
		b.logger.Debug().
			Str(logKeyAudience, a.String()).
			Int("fresh", sel.Fresh).
			Int("undated", sel.Undated).
			Int("stale", sel.Stale).
			Msg("Recency window backfilled")
	}

	return linkfilter.WithDateSuffix(linkfilter.PickTop(sel.Links, cfg.DisplayCap), b.location)
}

func recordSection(a domain.Audience, s domain.Section, generated bool) {
	status := observability.StatusPlaceholder
	if generated {
		status = observability.StatusGenerated
	}

	observability.SectionsBuilt.WithLabelValues(a.String(), status).Inc()
	observability.SectionLinks.WithLabelValues(a.String()).Set(float64(len(s.Links)))
}
