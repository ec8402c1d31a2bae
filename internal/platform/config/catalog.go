package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	apperrors "github.com/lueurxax/search-intel-brief/internal/core/errors"
)

// Feed source types.
const (
	SourceTypeRSS     = "rss"
	SourceTypeScrape  = "scrape"
	SourceTypeArticle = "article"
)

// Catalogue defaults.
const (
	DefaultProductFocus    = "ecommerce search relevance"
	DefaultOutputDir       = "output"
	DefaultDocumentTitle   = "Search Intel - Bi-Weekly"
	DefaultAuthorName      = "Your Name"
	DefaultAuthorTitle     = "Principal Architect"
	DefaultExecutiveModel  = "sonar-pro"
	DefaultConsultingModel = "sonar-pro"
	DefaultSocialModel     = "gpt-4o-mini"
	DefaultRedditQuery     = "search relevance"
	DefaultGitHubQuery     = "ecommerce search relevance sort:created-desc"
	DefaultTwitterQuery    = "(ecommerce OR retail) search lang:en -is:retweet"
	DefaultSourceLimit     = 5
	DefaultTopN            = 30
)

// Catalog is the curation catalogue: what to read, what to keep and how each
// audience is published.
type Catalog struct {
	ProductFocus  string        `yaml:"product_focus"`
	Topics        []string      `yaml:"topics"`
	Sources       Sources       `yaml:"sources"`
	Research      Research      `yaml:"research"`
	Filters       Filters       `yaml:"filters"`
	Links         Links         `yaml:"links"`
	Models        Models        `yaml:"models"`
	Branding      Branding      `yaml:"branding"`
	Summarization Summarization `yaml:"summarization"`
	Output        Output        `yaml:"output"`
	Schedule      Schedule      `yaml:"schedule"`
}

// Sources lists the collectors to run.
type Sources struct {
	Reddit          RedditSource `yaml:"reddit"`
	GitHub          QuerySource  `yaml:"github"`
	Twitter         QuerySource  `yaml:"twitter"`
	VendorBlogs     []FeedSource `yaml:"vendor_blogs"`
	RetailTechBlogs []FeedSource `yaml:"retail_tech_blogs"`
}

// RedditSource configures the subreddit search collector.
type RedditSource struct {
	Enabled    bool     `yaml:"enabled"`
	Subreddits []string `yaml:"subreddits"`
	Query      string   `yaml:"query"`
	Limit      int      `yaml:"limit"`
}

// QuerySource configures a search-API collector.
type QuerySource struct {
	Enabled bool   `yaml:"enabled"`
	Query   string `yaml:"query"`
	Limit   int    `yaml:"limit"`
}

// FeedSource is one blog, either an RSS feed, a listing page to scrape or a single article.
type FeedSource struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Profile string `yaml:"profile,omitempty"`
}

// Research configures the Perplexity research collector.
type Research struct {
	UsePerplexity  bool     `yaml:"use_perplexity"`
	Topics         []string `yaml:"topics"`
	Model          string   `yaml:"model"`
	Recency        string   `yaml:"search_recency_filter"`
	SearchMode     string   `yaml:"search_mode"`
	IncludeDomains []string `yaml:"include_domains"`
	ExcludeDomains []string `yaml:"exclude_domains"`
	UserLocation   string   `yaml:"user_location"`
}

// Filters configures the relevance filter.
type Filters struct {
	Include []string `yaml:"include_keywords"`
	Exclude []string `yaml:"exclude_keywords"`
	TopN    int      `yaml:"top_n"`
}

// Links configures the audience link policy. A nil Denylist or SocialHosts means
// the built-in list; an explicit empty list disables it.
type Links struct {
	Denylist      []string    `yaml:"denylist"`
	SocialHosts   []string    `yaml:"social_hosts"`
	RecencyDays   PerAudience `yaml:"recency_days"`
	MinPerSection PerAudience `yaml:"min_per_section"`
	AllowUndated  *bool       `yaml:"allow_undated_backfill"`
}

// PerAudience holds one integer per audience.
type PerAudience struct {
	Executive  int `yaml:"executive"`
	Consulting int `yaml:"consulting"`
	Social     int `yaml:"social"`
}

// Get returns the value for a.
func (p PerAudience) Get(a domain.Audience) int {
	switch a {
	case domain.AudienceExecutive:
		return p.Executive
	case domain.AudienceConsulting:
		return p.Consulting
	case domain.AudienceSocial:
		return p.Social
	default:
		return 0
	}
}

// Models maps each audience to a generator model id.
type Models struct {
	Executive  string `yaml:"executive"`
	Consulting string `yaml:"consulting"`
	Social     string `yaml:"social"`
}

// For returns the model for a.
func (m Models) For(a domain.Audience) string {
	switch a {
	case domain.AudienceExecutive:
		return m.Executive
	case domain.AudienceConsulting:
		return m.Consulting
	case domain.AudienceSocial:
		return m.Social
	default:
		return ""
	}
}

// ByAudience returns the models keyed by audience.
func (m Models) ByAudience() map[domain.Audience]string {
	out := make(map[domain.Audience]string, len(domain.Audiences()))
	for _, a := range domain.Audiences() {
		out[a] = m.For(a)
	}

	return out
}

func (m *Models) set(a domain.Audience, model string) {
	switch a {
	case domain.AudienceExecutive:
		m.Executive = model
	case domain.AudienceConsulting:
		m.Consulting = model
	case domain.AudienceSocial:
		m.Social = model
	}
}

// Branding is the attribution used by the social draft.
type Branding struct {
	AuthorName  string `yaml:"author_name"`
	AuthorTitle string `yaml:"author_title"`
	Banner      string `yaml:"banner"`
}

// Summarization toggles narrative generation.
type Summarization struct {
	UseLLM bool `yaml:"use_llm"`
}

// Output configures the rendered documents.
type Output struct {
	Dir   string `yaml:"dir"`
	Title string `yaml:"title"`
}

// Schedule configures the bi-weekly guard.
type Schedule struct {
	Anchor   string `yaml:"anchor"`
	Timezone string `yaml:"timezone"`
}

// DefaultCatalog returns a catalogue with every default filled in and no sources.
func DefaultCatalog() *Catalog {
	c := &Catalog{}
	c.applyDefaults()

	return c
}

// LoadCatalog reads the YAML catalogue at path. A missing file yields the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	c := &Catalog{}

	data, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading catalogue %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing catalogue %s: %w", path, err)
		}
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalogue %s: %w", path, err)
	}

	return c, nil
}

// Feeds returns vendor and retail-tech blogs in configuration order.
func (c *Catalog) Feeds() []FeedSource {
	out := make([]FeedSource, 0, len(c.Sources.VendorBlogs)+len(c.Sources.RetailTechBlogs))
	out = append(out, c.Sources.VendorBlogs...)
	out = append(out, c.Sources.RetailTechBlogs...)

	return out
}

// AllowUndated reports whether undated links may backfill a short recency window.
func (c *Catalog) AllowUndated() bool {
	return c.Links.AllowUndated == nil || *c.Links.AllowUndated
}

// Validate checks feed source types and URLs.
func (c *Catalog) Validate() error {
	for _, f := range c.Feeds() {
		switch f.Type {
		case SourceTypeRSS, SourceTypeScrape, SourceTypeArticle:
		default:
			return fmt.Errorf("%w: %q for %s", apperrors.ErrUnknownSourceType, f.Type, f.Name)
		}

		if strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("%w: source %q has no url", apperrors.ErrInvalidInput, f.Name)
		}
	}

	return nil
}

func (c *Catalog) applyDefaults() {
	defaultString(&c.ProductFocus, DefaultProductFocus)
	defaultString(&c.Output.Dir, DefaultOutputDir)
	defaultString(&c.Output.Title, DefaultDocumentTitle)
	defaultString(&c.Branding.AuthorName, DefaultAuthorName)
	defaultString(&c.Branding.AuthorTitle, DefaultAuthorTitle)
	defaultString(&c.Models.Executive, DefaultExecutiveModel)
	defaultString(&c.Models.Consulting, DefaultConsultingModel)
	defaultString(&c.Models.Social, DefaultSocialModel)
	defaultString(&c.Sources.Reddit.Query, DefaultRedditQuery)
	defaultString(&c.Sources.GitHub.Query, DefaultGitHubQuery)
	defaultString(&c.Sources.Twitter.Query, DefaultTwitterQuery)
	defaultInt(&c.Sources.Reddit.Limit, DefaultSourceLimit)
	defaultInt(&c.Sources.GitHub.Limit, DefaultSourceLimit)
	defaultInt(&c.Sources.Twitter.Limit, DefaultSourceLimit)
	defaultInt(&c.Filters.TopN, DefaultTopN)

	defaultInt(&c.Links.RecencyDays.Executive, 21)
	defaultInt(&c.Links.RecencyDays.Consulting, 28)
	defaultInt(&c.Links.RecencyDays.Social, 21)
	defaultInt(&c.Links.MinPerSection.Executive, 6)
	defaultInt(&c.Links.MinPerSection.Consulting, 8)
	defaultInt(&c.Links.MinPerSection.Social, 5)

	if len(c.Research.Topics) == 0 {
		c.Research.Topics = c.Topics
	}

	for i := range c.Sources.VendorBlogs {
		defaultString(&c.Sources.VendorBlogs[i].Type, SourceTypeRSS)
	}

	for i := range c.Sources.RetailTechBlogs {
		defaultString(&c.Sources.RetailTechBlogs[i].Type, SourceTypeRSS)
	}
}

func defaultString(target *string, value string) {
	if strings.TrimSpace(*target) == "" {
		*target = value
	}
}

func defaultInt(target *int, value int) {
	if *target <= 0 {
		*target = value
	}
}
