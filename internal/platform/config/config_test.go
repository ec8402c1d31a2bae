package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	apperrors "github.com/lueurxax/search-intel-brief/internal/core/errors"
)

const testCatalog = `
product_focus: "site search for grocers"
topics: ["semantic search", "query understanding"]
sources:
  reddit:
    enabled: true
    subreddits: [ecommerce, searchengineering]
    limit: 3
  github:
    enabled: true
  vendor_blogs:
    - name: Vendor
      url: https://vendor.example.com/feed.xml
  retail_tech_blogs:
    - name: Flipkart Tech
      type: scrape
      url: https://tech.flipkart.com/
research:
  use_perplexity: true
  search_recency_filter: month
filters:
  include_keywords: [search, relevance]
  exclude_keywords: [hiring]
  top_n: 12
links:
  denylist: [rival.example]
  recency_days:
    consulting: 14
  min_per_section:
    social: 2
  allow_undated_backfill: false
models:
  executive: sonar
branding:
  author_name: Jo
output:
  dir: out
schedule:
  anchor: "2025-08-11"
  timezone: Asia/Kolkata
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadCatalog_MissingFileUsesDefaults(t *testing.T) {
	c, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultProductFocus, c.ProductFocus)
	assert.Equal(t, DefaultTopN, c.Filters.TopN)
	assert.Equal(t, 21, c.Links.RecencyDays.Get(domain.AudienceExecutive))
	assert.Equal(t, 28, c.Links.RecencyDays.Get(domain.AudienceConsulting))
	assert.Equal(t, 8, c.Links.MinPerSection.Get(domain.AudienceConsulting))
	assert.True(t, c.AllowUndated())
	assert.Nil(t, c.Links.Denylist)
	assert.Equal(t, DefaultSocialModel, c.Models.For(domain.AudienceSocial))
	assert.Empty(t, c.Feeds())
}

func TestLoadCatalog_ParsesFile(t *testing.T) {
	c, err := LoadCatalog(writeCatalog(t, testCatalog))
	require.NoError(t, err)

	assert.Equal(t, "site search for grocers", c.ProductFocus)
	assert.Equal(t, []string{"ecommerce", "searchengineering"}, c.Sources.Reddit.Subreddits)
	assert.Equal(t, 3, c.Sources.Reddit.Limit)
	assert.Equal(t, DefaultSourceLimit, c.Sources.GitHub.Limit)
	assert.Equal(t, DefaultGitHubQuery, c.Sources.GitHub.Query)

	feeds := c.Feeds()
	require.Len(t, feeds, 2)
	assert.Equal(t, SourceTypeRSS, feeds[0].Type)
	assert.Equal(t, SourceTypeScrape, feeds[1].Type)

	assert.Equal(t, c.Topics, c.Research.Topics)
	assert.Equal(t, "month", c.Research.Recency)
	assert.Equal(t, 12, c.Filters.TopN)
	assert.Equal(t, []string{"rival.example"}, c.Links.Denylist)
	assert.Equal(t, 14, c.Links.RecencyDays.Consulting)
	assert.Equal(t, 21, c.Links.RecencyDays.Executive)
	assert.Equal(t, 2, c.Links.MinPerSection.Social)
	assert.False(t, c.AllowUndated())
	assert.Equal(t, "sonar", c.Models.Executive)
	assert.Equal(t, DefaultConsultingModel, c.Models.Consulting)
	assert.Equal(t, "Jo", c.Branding.AuthorName)
	assert.Equal(t, DefaultAuthorTitle, c.Branding.AuthorTitle)
	assert.Equal(t, "out", c.Output.Dir)
	assert.Equal(t, "Asia/Kolkata", c.Schedule.Timezone)
}

func TestLoadCatalog_RejectsUnknownSourceType(t *testing.T) {
	_, err := LoadCatalog(writeCatalog(t, `
sources:
  vendor_blogs:
    - name: Bad
      type: podcast
      url: https://example.com
`))

	assert.ErrorIs(t, err, apperrors.ErrUnknownSourceType)
}

func TestLoadCatalog_RejectsMissingURL(t *testing.T) {
	_, err := LoadCatalog(writeCatalog(t, `
sources:
  vendor_blogs:
    - name: NoURL
`))

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestLoadCatalog_Malformed(t *testing.T) {
	_, err := LoadCatalog(writeCatalog(t, "topics: [unclosed"))

	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.AppEnv)
	assert.Equal(t, "prompts", cfg.PromptsDir)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "Asia/Kolkata", cfg.Output.DisplayTimezone)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir())
	require.NotNil(t, cfg.Catalog)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeCatalog(t, testCatalog))
	t.Setenv("PERPLEXITY_API_KEY", "")
	t.Setenv("PPLX_API_KEY", "pplx-key")
	t.Setenv("EXEC_MODEL", "gpt-4o")
	t.Setenv("SOCIAL_MODEL", "")
	t.Setenv("LI_MODEL", "gpt-4.1-mini")
	t.Setenv("USE_LLM", "true")
	t.Setenv("OUTPUT_DIR", "/tmp/briefs")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "pplx-key", cfg.LLM.PerplexityAPIKey)
	assert.Equal(t, "gpt-4o", cfg.Catalog.Models.Executive)
	assert.Equal(t, "gpt-4.1-mini", cfg.Catalog.Models.Social)
	assert.Equal(t, DefaultConsultingModel, cfg.Catalog.Models.Consulting)
	assert.True(t, cfg.Catalog.Summarization.UseLLM)
	assert.Equal(t, "/tmp/briefs", cfg.OutputDir())
}

func TestLoad_ArgumentPathWins(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)

	assert.Equal(t, "site search for grocers", cfg.Catalog.ProductFocus)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("LLM_TIMEOUT", "soon")

	_, err := Load("")
	assert.Error(t, err)
}
