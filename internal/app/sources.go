package app

import (
	"net/http"
	"strings"

	"github.com/lueurxax/search-intel-brief/internal/ingest/collectors"
	"github.com/lueurxax/search-intel-brief/internal/platform/config"
)

// Collectors builds the enabled collectors in the order they run: reddit,
// twitter, github, feeds, then research.
func (a *App) Collectors() []collectors.Collector {
	cat := a.cfg.Catalog
	src := a.cfg.Sources
	client := &http.Client{Timeout: src.HTTPTimeout}

	var out []collectors.Collector

	if r := cat.Sources.Reddit; r.Enabled && len(r.Subreddits) > 0 {
		out = append(out, collectors.NewReddit(r.Subreddits, r.Query, r.Limit, src.RedditUserAgent, client, a.logger))
	}

	if t := cat.Sources.Twitter; t.Enabled {
		out = append(out, collectors.NewTwitter(t.Query, t.Limit, src.XBearerToken, client))
	}

	if g := cat.Sources.GitHub; g.Enabled {
		out = append(out, collectors.NewGitHub(g.Query, g.Limit, src.GitHubToken, client))
	}

	for _, f := range cat.Feeds() {
		if c := feedCollector(f, client); c != nil {
			out = append(out, c)
		}
	}

	if r := cat.Research; r.UsePerplexity {
		if strings.TrimSpace(a.cfg.LLM.PerplexityAPIKey) == "" {
			a.logger.Warn().Msg("Research enabled without a Perplexity key, skipping")
		} else {
			out = append(out, collectors.NewResearch(r.Topics, collectors.ResearchOptions{
				Model:          r.Model,
				Recency:        r.Recency,
				SearchMode:     r.SearchMode,
				IncludeDomains: r.IncludeDomains,
				ExcludeDomains: r.ExcludeDomains,
				UserLocation:   r.UserLocation,
			}, a.cfg.LLM.PerplexityAPIKey, nil, a.logger))
		}
	}

	return out
}

func feedCollector(f config.FeedSource, client *http.Client) collectors.Collector {
	switch f.Type {
	case config.SourceTypeRSS:
		return collectors.NewRSS(f.Name, f.URL, client)
	case config.SourceTypeScrape:
		return collectors.NewScrape(f.Name, f.URL, collectors.ScrapeProfile(f.Profile), client)
	case config.SourceTypeArticle:
		return collectors.NewArticle(f.Name, f.URL, client)
	default:
		return nil
	}
}
