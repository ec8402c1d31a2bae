// Package app wires configuration into the briefing pipeline and runs it once:
//
//   - Collect: every configured source, sequentially, each failure isolated
//   - Filter: keyword relevance, hash dedup and score ranking
//   - Assemble: narrative and further-reading links for each audience
//   - Render: one Markdown document per audience with the run metadata footer
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/search-intel-brief/internal/core/dates"
	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/core/llm"
	"github.com/lueurxax/search-intel-brief/internal/ingest/collectors"
	"github.com/lueurxax/search-intel-brief/internal/output/briefing"
	"github.com/lueurxax/search-intel-brief/internal/output/render"
	"github.com/lueurxax/search-intel-brief/internal/platform/config"
	"github.com/lueurxax/search-intel-brief/internal/platform/observability"
	"github.com/lueurxax/search-intel-brief/internal/platform/schedule"
	"github.com/lueurxax/search-intel-brief/internal/process/filters"
	"github.com/lueurxax/search-intel-brief/internal/process/linkfilter"
	"github.com/lueurxax/search-intel-brief/internal/process/prompts"
)

const (
	logFieldAudience = "audience"
	logFieldProvider = "provider"
)

// App holds the configuration and runs briefing jobs.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger
	now    func() time.Time
}

// New creates a new App instance.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// RunOptions select how a run behaves.
type RunOptions struct {
	// Simulate swaps the narrative generator for canned output.
	Simulate bool
	// Schedule skips the run outside the bi-weekly slot.
	Schedule bool
}

// Summary describes a finished run.
type Summary struct {
	Skipped  bool
	NextSlot time.Time
	Meta     domain.RunMeta
	Paths    []string
}

// Run executes one briefing run.
func (a *App) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	start := a.now()
	cat := a.cfg.Catalog
	loc := a.displayLocation()

	if opts.Schedule {
		slot, err := schedule.NewBiweekly(cat.Schedule.Anchor, a.scheduleTimezone())
		if err != nil {
			return Summary{}, fmt.Errorf("schedule: %w", err)
		}

		if !slot.Contains(start) {
			next := slot.Next(start)
			a.logger.Info().Time("next_slot", next).Msg("Not the bi-weekly slot, exiting")

			return Summary{Skipped: true, NextSlot: next}, nil
		}
	}

	raw, stats := collectors.RunAll(ctx, a.Collectors(), a.cfg.Sources.CollectorTimeout, a.logger)

	a.logger.Info().
		Int("items", len(raw)).
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Msg("Collection complete")

	ranked := filters.New(cat.Filters.Include, cat.Filters.Exclude, cat.Filters.TopN, a.logger).FilterAndRank(raw)

	generator := a.Generator(opts.Simulate)

	builder := briefing.NewBuilder(briefing.Options{
		Generator:    generator,
		Prompts:      prompts.Load(a.cfg.PromptsDir, a.logger),
		Policy:       a.DomainPolicy(),
		Audiences:    a.Audiences(),
		Location:     loc,
		Now:          a.now,
		ProductFocus: cat.ProductFocus,
		Topics:       cat.Topics,
		AuthorName:   cat.Branding.AuthorName,
		AuthorTitle:  cat.Branding.AuthorTitle,
		Banner:       cat.Branding.Banner,
	}, a.logger)

	res := builder.Build(ctx, ranked)

	meta := briefing.NewRunMeta(briefing.RunInfo{
		Now:         start,
		Location:    loc,
		UseLLM:      generator != nil,
		UseResearch: cat.Research.UsePerplexity,
		Models:      cat.Models.ByAudience(),
		Raw:         raw,
		Kept:        ranked,
	})

	renderer := render.NewMarkdown(a.cfg.OutputDir(), start.In(loc), a.logger)

	paths, err := render.RenderAll(renderer, a.documents(res, meta))

	a.recordRun(start)

	if err != nil {
		return Summary{Meta: meta, Paths: paths}, err
	}

	a.logger.Info().
		Str("run_id", meta.RunID).
		Strs("paths", paths).
		Dur("duration", a.now().Sub(start)).
		Msg("Briefing complete")

	return Summary{Meta: meta, Paths: paths}, nil
}

func (a *App) documents(res briefing.Result, meta domain.RunMeta) []render.Document {
	docs := make([]render.Document, 0, len(domain.Audiences()))

	for _, aud := range domain.Audiences() {
		docs = append(docs, render.Document{
			Audience: aud,
			Title:    render.DocumentTitle(a.cfg.Catalog.Output.Title, aud),
			Sections: []domain.Section{res.Section(aud)},
			Meta:     meta,
		})
	}

	return docs
}

func (a *App) recordRun(start time.Time) {
	observability.RunDurationSeconds.Set(a.now().Sub(start).Seconds())
	observability.LastRunTimestamp.Set(float64(a.now().Unix()))

	path := a.cfg.Output.MetricsTextfile
	if path == "" {
		return
	}

	if err := observability.WriteTextfile(path); err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("Failed to write metrics textfile")
	}
}

// Generator returns the narrative generator for this run, or nil when narrative
// generation is disabled or no provider is configured.
func (a *App) Generator(simulate bool) llm.Generator {
	if simulate {
		return llm.NewMock()
	}

	if !a.cfg.Catalog.Summarization.UseLLM {
		return nil
	}

	circuit := llm.CircuitBreakerConfig{
		Threshold:  a.cfg.LLM.CircuitThreshold,
		ResetAfter: a.cfg.LLM.CircuitReset,
	}

	openAI := a.chatClient(llm.ClientConfig{
		Name:      llm.ProviderOpenAI,
		APIKey:    a.cfg.LLM.OpenAIAPIKey,
		Timeout:   a.cfg.LLM.Timeout,
		RateLimit: a.cfg.LLM.RateLimitRPS,
		Circuit:   circuit,
	})

	perplexity := a.chatClient(llm.ClientConfig{
		Name:      llm.ProviderPerplexity,
		APIKey:    a.cfg.LLM.PerplexityAPIKey,
		BaseURL:   llm.PerplexityBaseURL,
		Timeout:   a.cfg.LLM.Timeout,
		RateLimit: a.cfg.LLM.RateLimitRPS,
		Circuit:   circuit,
	})

	router := llm.NewRouter(openAI, perplexity)
	if !router.Available() {
		a.logger.Warn().Msg("No narrative provider configured, sections will use placeholders")
		return nil
	}

	return router
}

func (a *App) chatClient(cfg llm.ClientConfig) llm.Generator {
	g, err := llm.NewChatClient(cfg, a.logger)
	if err != nil {
		a.logger.Info().Err(err).Str(logFieldProvider, string(cfg.Name)).Msg("Narrative provider unavailable")
		return nil
	}

	return g
}

// DomainPolicy builds the link host policy from the catalogue.
func (a *App) DomainPolicy() *linkfilter.DomainPolicy {
	denylist := a.cfg.Catalog.Links.Denylist
	if denylist == nil {
		denylist = linkfilter.DefaultDenylist
	}

	socialHosts := a.cfg.Catalog.Links.SocialHosts
	if socialHosts == nil {
		socialHosts = linkfilter.DefaultSocialHosts
	}

	return linkfilter.NewDomainPolicy(denylist, socialHosts)
}

// Audiences maps the catalogue link and model settings onto each audience.
func (a *App) Audiences() map[domain.Audience]briefing.AudienceConfig {
	cat := a.cfg.Catalog
	out := make(map[domain.Audience]briefing.AudienceConfig, len(domain.Audiences()))

	allowUndated := cat.AllowUndated()

	for _, aud := range domain.Audiences() {
		out[aud] = briefing.AudienceConfig{
			Model: cat.Models.For(aud),
			Window: linkfilter.RecencyWindow{
				Days:      cat.Links.RecencyDays.Get(aud),
				MinNeeded: cat.Links.MinPerSection.Get(aud),
			},
			AllowUndated: &allowUndated,
		}
	}

	return out
}

func (a *App) displayLocation() *time.Location {
	loc, err := schedule.LoadLocation(a.cfg.Output.DisplayTimezone)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Invalid display timezone, using default")
		return dates.LoadLocation(dates.DefaultDisplayZone)
	}

	return loc
}

func (a *App) scheduleTimezone() string {
	if tz := a.cfg.Catalog.Schedule.Timezone; tz != "" {
		return tz
	}

	return a.cfg.Output.DisplayTimezone
}

// IsCanceled reports whether err stems from context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
