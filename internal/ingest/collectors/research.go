package collectors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/core/links/linkextract"
)

const (
	perplexityChatURL     = "https://api.perplexity.ai/chat/completions"
	researchSource        = "Perplexity"
	researchDefaultModel  = "sonar-pro"
	researchDefaultWindow = "week"
	researchTopicInterval = 500 * time.Millisecond
	researchTimeout       = 180 * time.Second
	headerContentType     = "Content-Type"
	contentTypeJSON       = "application/json"

	researchSystemPrompt = "You are a research agent for an e-commerce search SaaS product architect. " +
		"Return concise, factual findings with citations. Prefer primary sources."
	researchUserPromptFmt = "Research topic:\n%s\n\n" +
		"Return:\n" +
		"1) 5-8 crisp bullets (business-friendly)\n" +
		"2) A final JSON object named RESEARCH with fields: " +
		"{'headline': str, 'summary': str, 'takeaways': [str], 'tags': [str]}\n" +
		"Always ground claims with sources."
)

var (
	researchBlockRe    = regexp.MustCompile(`RESEARCH\s*(\{[\s\S]*\})`)
	errAllTopicsFailed = errors.New("all research topics failed")
)

// ResearchOptions tune the Perplexity search for every topic.
type ResearchOptions struct {
	Model          string
	Recency        string
	SearchMode     string
	IncludeDomains []string
	ExcludeDomains []string
	UserLocation   string
}

// Research asks Perplexity one question per topic and turns each answer into an item.
type Research struct {
	topics  []string
	opts    ResearchOptions
	apiKey  string
	baseURL string
	fetcher httpFetcher
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

// NewResearch creates a research collector.
func NewResearch(topics []string, opts ResearchOptions, apiKey string, client *http.Client, logger *zerolog.Logger) *Research {
	if opts.Model == "" {
		opts.Model = researchDefaultModel
	}

	if opts.Recency == "" {
		opts.Recency = researchDefaultWindow
	}

	if client == nil {
		client = &http.Client{Timeout: researchTimeout}
	}

	return &Research{
		topics:  topics,
		opts:    opts,
		apiKey:  apiKey,
		baseURL: perplexityChatURL,
		fetcher: newHTTPFetcher(client, ""),
		limiter: rate.NewLimiter(rate.Every(researchTopicInterval), 1),
		logger:  logger,
	}
}

func (r *Research) Name() string {
	return "research"
}

type researchMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type researchRequest struct {
	Model              string            `json:"model"`
	Messages           []researchMessage `json:"messages"`
	SearchMode         string            `json:"search_mode,omitempty"`
	SearchRecency      string            `json:"search_recency_filter,omitempty"`
	SearchDomainFilter []string          `json:"search_domain_filter,omitempty"`
	WebSearchOptions   *webSearchOptions `json:"web_search_options,omitempty"`
}

type webSearchOptions struct {
	UserLocation string `json:"user_location"`
}

type researchResponse struct {
	Choices []struct {
		Message researchMessage `json:"message"`
	} `json:"choices"`
	SearchResults []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Date  string `json:"date"`
	} `json:"search_results"`
	Citations []string `json:"citations"`
}

// Finding is the structured block the research prompt asks for.
type Finding struct {
	Headline  string   `json:"headline"`
	Summary   string   `json:"summary"`
	Takeaways []string `json:"takeaways"`
	Tags      []string `json:"tags"`
}

// Collect researches every topic. A failed topic is logged and skipped; the
// collector only fails when every topic failed.
func (r *Research) Collect(ctx context.Context) ([]domain.Item, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("research: %w", errNoToken)
	}

	var (
		items  []domain.Item
		failed int
	)

	for _, topic := range r.topics {
		if err := r.limiter.Wait(ctx); err != nil {
			return items, fmt.Errorf("rate limiter: %w", err)
		}

		item, err := r.researchTopic(ctx, topic)
		if err != nil {
			failed++

			r.logger.Warn().Err(err).Str("topic", topic).Msg("Research topic failed")

			continue
		}

		items = append(items, item)
	}

	if len(r.topics) > 0 && failed == len(r.topics) {
		return nil, errAllTopicsFailed
	}

	return items, nil
}

func (r *Research) researchTopic(ctx context.Context, topic string) (domain.Item, error) {
	payload, err := json.Marshal(r.buildRequest(topic))
	if err != nil {
		return domain.Item{}, fmt.Errorf("encode research request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(payload))
	if err != nil {
		return domain.Item{}, fmt.Errorf(wrapCreateRequest, err)
	}

	req.Header.Set(headerAuth, "Bearer "+r.apiKey)
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(headerUserAgent, r.fetcher.userAgent)

	body, err := r.fetcher.do(req)
	if err != nil {
		return domain.Item{}, err
	}

	var resp researchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Item{}, fmt.Errorf("decode research response: %w", err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}

	finding := ParseFinding(text)

	title := strings.TrimSpace(finding.Headline)
	if title == "" {
		title = topic
	}

	return domain.Item{
		Title:     title,
		Summary:   finding.Summary,
		Content:   text,
		Source:    researchSource,
		Tags:      finding.Tags,
		Citations: researchCitations(resp, text),
	}, nil
}

func (r *Research) buildRequest(topic string) researchRequest {
	req := researchRequest{
		Model: r.opts.Model,
		Messages: []researchMessage{
			{Role: "system", Content: researchSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(researchUserPromptFmt, topic)},
		},
		SearchMode:    r.opts.SearchMode,
		SearchRecency: r.opts.Recency,
	}

	req.SearchDomainFilter = append(req.SearchDomainFilter, r.opts.IncludeDomains...)
	for _, d := range r.opts.ExcludeDomains {
		req.SearchDomainFilter = append(req.SearchDomainFilter, "-"+d)
	}

	if r.opts.UserLocation != "" {
		req.WebSearchOptions = &webSearchOptions{UserLocation: r.opts.UserLocation}
	}

	return req
}

// ParseFinding extracts the trailing RESEARCH {...} block. A missing or malformed
// block yields a zero Finding.
func ParseFinding(text string) Finding {
	var f Finding

	m := researchBlockRe.FindStringSubmatch(text)
	if m == nil {
		return f
	}

	if err := json.Unmarshal([]byte(m[1]), &f); err != nil {
		return Finding{}
	}

	return f
}

// researchCitations prefers structured search results, then the bare citation
// list, then URLs found in the answer text.
func researchCitations(resp researchResponse, text string) []domain.Citation {
	var out []domain.Citation

	for _, sr := range resp.SearchResults {
		if strings.TrimSpace(sr.URL) == "" {
			continue
		}

		out = append(out, domain.Citation{Title: sr.Title, URL: sr.URL, Date: sr.Date})
	}

	if len(out) > 0 {
		return out
	}

	urls := resp.Citations
	if len(urls) == 0 {
		urls = linkextract.FindURLs(text)
	}

	for _, u := range urls {
		out = append(out, domain.Citation{URL: u})
	}

	return out
}
