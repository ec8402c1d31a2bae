package briefing

import (
	"context"
	"time"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/process/narrative"
	"github.com/lueurxax/search-intel-brief/internal/process/prompts"
)

const logKeyAudience = "audience"

// generate returns the generator's lines for a, or nil when generation is
// disabled or fails.
func (b *Builder) generate(ctx context.Context, a domain.Audience, cfg AudienceConfig, ranked []domain.Item, now time.Time) []string {
	if b.generator == nil {
		return nil
	}

	payload, err := prompts.ForAudience(a, ranked)
	if err != nil {
		b.logger.Warn().Err(err).Str(logKeyAudience, a.String()).Msg("Failed to encode prompt payload")
		return nil
	}

	user := prompts.Apply(b.prompts.User(a), prompts.Vars{
		Today:        now.In(b.location).Format(todayLayout) + " (" + b.location.String() + ")",
		ProductFocus: b.productFocus,
		Topics:       b.topics,
		RecencyDays:  cfg.Window.Days,
		Denylist:     b.policy.Denylist(),
		ItemsJSON:    payload,
		AuthorName:   b.authorName,
		AuthorTitle:  b.authorTitle,
	})

	text, err := b.generator.Generate(ctx, b.prompts.System, user, cfg.Model)
	if err != nil {
		b.logger.Warn().
			Err(err).
			Str(logKeyAudience, a.String()).
			Str("model", cfg.Model).
			Msg("Narrative generation failed, using placeholder")

		return nil
	}

	return narrative.SplitLines(text)
}

func (b *Builder) shape(a domain.Audience, lines []string) []string {
	switch a {
	case domain.AudienceExecutive:
		return narrative.ShapeExecutive(lines)
	case domain.AudienceConsulting:
		return narrative.ShapeConsulting(lines)
	case domain.AudienceSocial:
		return narrative.ShapeSocial(lines, b.banner)
	default:
		return nil
	}
}

func narrativeBanner(author string) string {
	return narrative.DefaultBanner(author)
}
