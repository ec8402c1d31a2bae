// Package briefing assembles the executive, consulting and social sections from
// ranked items: narrative text from the generator, shaped per audience, plus the
// audience's further-reading links.
package briefing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/search-intel-brief/internal/core/dates"
	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/core/llm"
	"github.com/lueurxax/search-intel-brief/internal/process/linkfilter"
	"github.com/lueurxax/search-intel-brief/internal/process/prompts"
)

// Section titles.
const (
	TitleExecutive  = "Executive Insights"
	TitleConsulting = "Consulting Team — What Changed & How to Use It"
	TitleSocial     = "Social Draft Kit"
)

const todayLayout = "2006-01-02 15:04:05"

// AudienceConfig controls how one audience section is produced.
// AllowUndated, when set, decides undated backfill; Window.AllowUndated only
// applies to the built-in defaults.
type AudienceConfig struct {
	Title        string
	Model        string
	Window       linkfilter.RecencyWindow
	DisplayCap   int
	AllowUndated *bool
}

// DefaultAudiences returns the built-in per-audience settings.
func DefaultAudiences() map[domain.Audience]AudienceConfig {
	return map[domain.Audience]AudienceConfig{
		domain.AudienceExecutive: {
			Title:      TitleExecutive,
			Model:      "sonar-pro",
			Window:     linkfilter.RecencyWindow{Days: 21, MinNeeded: 6, AllowUndated: true},
			DisplayCap: linkfilter.DefaultExecutiveCap,
		},
		domain.AudienceConsulting: {
			Title:      TitleConsulting,
			Model:      "sonar-pro",
			Window:     linkfilter.RecencyWindow{Days: 28, MinNeeded: 8, AllowUndated: true},
			DisplayCap: linkfilter.DefaultConsultingCap,
		},
		domain.AudienceSocial: {
			Title:      TitleSocial,
			Model:      "gpt-4o-mini",
			Window:     linkfilter.RecencyWindow{Days: 21, MinNeeded: 5, AllowUndated: true},
			DisplayCap: linkfilter.DefaultSocialCap,
		},
	}
}

// Options wires a Builder. Zero values fall back to defaults; a nil Generator
// means narrative generation is disabled. Audiences entries override the defaults
// field by field; unset fields keep the default, so undated backfill stays on
// unless an entry sets AllowUndated.
type Options struct {
	Generator    llm.Generator
	Prompts      *prompts.Set
	Policy       *linkfilter.DomainPolicy
	Audiences    map[domain.Audience]AudienceConfig
	Location     *time.Location
	Now          func() time.Time
	ProductFocus string
	Topics       []string
	AuthorName   string
	AuthorTitle  string
	Banner       string
}

// Builder assembles the three audience sections.
type Builder struct {
	generator    llm.Generator
	prompts      *prompts.Set
	policy       *linkfilter.DomainPolicy
	audiences    map[domain.Audience]AudienceConfig
	location     *time.Location
	now          func() time.Time
	productFocus string
	topics       []string
	authorName   string
	authorTitle  string
	banner       string
	logger       *zerolog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options, logger *zerolog.Logger) *Builder {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	b := &Builder{
		generator:    opts.Generator,
		prompts:      opts.Prompts,
		policy:       opts.Policy,
		audiences:    DefaultAudiences(),
		location:     opts.Location,
		now:          opts.Now,
		productFocus: opts.ProductFocus,
		topics:       opts.Topics,
		authorName:   opts.AuthorName,
		authorTitle:  opts.AuthorTitle,
		banner:       opts.Banner,
		logger:       logger,
	}

	for a, cfg := range opts.Audiences {
		b.audiences[a] = mergeAudience(b.audiences[a], cfg)
	}

	if b.prompts == nil {
		b.prompts = prompts.Defaults()
	}

	if b.policy == nil {
		b.policy = linkfilter.DefaultDomainPolicy()
	}

	if b.location == nil {
		b.location = dates.LoadLocation(dates.DefaultDisplayZone)
	}

	if b.now == nil {
		b.now = time.Now
	}

	if b.banner == "" {
		b.banner = narrativeBanner(b.authorName)
	}

	return b
}

func mergeAudience(base, override AudienceConfig) AudienceConfig {
	if override.Title != "" {
		base.Title = override.Title
	}

	if override.Model != "" {
		base.Model = override.Model
	}

	if override.Window.Days > 0 {
		base.Window.Days = override.Window.Days
	}

	if override.Window.MinNeeded > 0 {
		base.Window.MinNeeded = override.Window.MinNeeded
	}

	if override.AllowUndated != nil {
		base.Window.AllowUndated = *override.AllowUndated
	}

	if override.DisplayCap > 0 {
		base.DisplayCap = override.DisplayCap
	}

	return base
}

// Result holds the assembled sections in audience order.
type Result struct {
	Sections  map[domain.Audience]domain.Section
	Generated map[domain.Audience]bool
}

// Section returns the section for a; the zero Section when absent.
func (r Result) Section(a domain.Audience) domain.Section {
	return r.Sections[a]
}

// Ordered returns the sections in assembly order.
func (r Result) Ordered() []domain.Section {
	out := make([]domain.Section, 0, len(r.Sections))

	for _, a := range domain.Audiences() {
		if s, ok := r.Sections[a]; ok {
			out = append(out, s)
		}
	}

	return out
}

// Build assembles every audience section from the relevance-ranked items.
// It never fails: generator errors degrade to the audience placeholder.
func (b *Builder) Build(ctx context.Context, ranked []domain.Item) Result {
	now := b.now()

	res := Result{
		Sections:  make(map[domain.Audience]domain.Section, len(domain.Audiences())),
		Generated: make(map[domain.Audience]bool, len(domain.Audiences())),
	}

	pool := buildLinkPool(ranked)

	b.logger.Info().
		Int("items", len(ranked)).
		Int("links", len(pool)).
		Msg("Link pool built")

	for _, a := range domain.Audiences() {
		cfg := b.audiences[a]

		lines := b.generate(ctx, a, cfg, ranked, now)
		res.Generated[a] = len(lines) > 0

		section := domain.Section{
			Title:      cfg.Title,
			Paragraphs: NormalizeParagraphs(b.shape(a, lines)),
			Links:      NormalizeLinks(b.selectLinks(a, cfg, pool, now)),
		}

		recordSection(a, section, res.Generated[a])

		b.logger.Info().
			Str(logKeyAudience, a.String()).
			Bool("generated", res.Generated[a]).
			Int("paragraphs", len(section.Paragraphs)).
			Int("links", len(section.Links)).
			Msg("Section assembled")

		res.Sections[a] = section
	}

	return res
}
