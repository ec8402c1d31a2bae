package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/platform/htmlutils"
)

const (
	redditBaseURL   = "https://www.reddit.com"
	redditLinkBase  = "https://reddit.com"
	redditUserAgent = "search-intel-agent/1.0"
	redditSource    = "Reddit"
	redditPrefix    = "[Reddit] "
)

// Reddit searches subreddits through the public JSON listing endpoints and falls
// back to the hot listing when a search yields nothing or fails.
type Reddit struct {
	subreddits []string
	query      string
	limit      int
	baseURL    string
	fetcher    httpFetcher
	logger     *zerolog.Logger
}

// NewReddit creates a subreddit collector.
func NewReddit(subreddits []string, query string, limit int, userAgent string, client *http.Client, logger *zerolog.Logger) *Reddit {
	if userAgent == "" {
		userAgent = redditUserAgent
	}

	return &Reddit{
		subreddits: subreddits,
		query:      query,
		limit:      limit,
		baseURL:    redditBaseURL,
		fetcher:    newHTTPFetcher(client, userAgent),
		logger:     logger,
	}
}

func (r *Reddit) Name() string {
	return "reddit"
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Permalink  string  `json:"permalink"`
	URL        string  `json:"url"`
	CreatedUTC float64 `json:"created_utc"`
}

// Collect never fails as a whole: a subreddit whose search and hot listings both
// fail contributes nothing.
func (r *Reddit) Collect(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item

	for _, sub := range r.subreddits {
		posts, err := r.search(ctx, sub)
		if err != nil || len(posts) == 0 {
			if err != nil {
				r.logger.Debug().Err(err).Str("subreddit", sub).Msg("Reddit search failed, falling back to hot")
			}

			posts, err = r.hot(ctx, sub)
			if err != nil {
				r.logger.Warn().Err(err).Str("subreddit", sub).Msg("Reddit hot listing failed")
				continue
			}
		}

		for i, p := range posts {
			if i >= r.limit {
				break
			}

			items = append(items, r.toItem(sub, p))
		}
	}

	return items, nil
}

func (r *Reddit) search(ctx context.Context, sub string) ([]redditPost, error) {
	params := url.Values{}
	params.Set("q", r.query)
	params.Set("sort", "new")
	params.Set("restrict_sr", "1")
	params.Set("limit", strconv.Itoa(r.limit))

	return r.listing(ctx, fmt.Sprintf("%s/r/%s/search.json?%s", r.baseURL, url.PathEscape(sub), params.Encode()))
}

func (r *Reddit) hot(ctx context.Context, sub string) ([]redditPost, error) {
	return r.listing(ctx, fmt.Sprintf("%s/r/%s/hot.json?limit=%d", r.baseURL, url.PathEscape(sub), r.limit))
}

func (r *Reddit) listing(ctx context.Context, rawURL string) ([]redditPost, error) {
	body, err := r.fetcher.get(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode reddit listing: %w", err)
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, c := range listing.Data.Children {
		posts = append(posts, c.Data)
	}

	return posts, nil
}

func (r *Reddit) toItem(sub string, p redditPost) domain.Item {
	link := strings.TrimSpace(p.URL)
	if p.Permalink != "" {
		link = redditLinkBase + p.Permalink
	}

	return domain.Item{
		Title:     redditPrefix + p.Title,
		Summary:   htmlutils.Truncate(p.Selftext, summaryMaxRunes),
		URL:       link,
		Source:    redditSource,
		Date:      time.Unix(int64(p.CreatedUTC), 0).UTC().Format(time.RFC3339),
		Tags:      []string{"reddit", sub, "search"},
		Citations: []domain.Citation{{Title: p.Title, URL: link}},
	}
}
