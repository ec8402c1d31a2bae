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

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/platform/htmlutils"
)

const (
	twitterSearchURL   = "https://api.twitter.com/2/tweets/search/recent"
	twitterMaxResults  = 100
	twitterMinResults  = 10
	twitterStatusURL   = "https://twitter.com/i/web/status/"
	twitterTitleRunes  = 100
	twitterSource      = "Twitter"
	twitterPrefix      = "[X] "
	twitterTweetFields = "created_at,author_id,lang,public_metrics"
)

// Twitter runs a recent-search query. A bearer token is required.
type Twitter struct {
	query   string
	limit   int
	bearer  string
	baseURL string
	fetcher httpFetcher
	now     func() time.Time
}

// NewTwitter creates a recent-search collector.
func NewTwitter(query string, limit int, bearer string, client *http.Client) *Twitter {
	return &Twitter{
		query:   query,
		limit:   limit,
		bearer:  bearer,
		baseURL: twitterSearchURL,
		fetcher: newHTTPFetcher(client, ""),
		now:     time.Now,
	}
}

func (t *Twitter) Name() string {
	return "twitter"
}

type twitterSearchResponse struct {
	Data []struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
	} `json:"data"`
}

func (t *Twitter) Collect(ctx context.Context) ([]domain.Item, error) {
	if t.bearer == "" {
		return nil, fmt.Errorf("twitter: %w", errNoToken)
	}

	params := url.Values{}
	params.Set("query", t.query)
	params.Set("max_results", strconv.Itoa(max(min(t.limit, twitterMaxResults), twitterMinResults)))
	params.Set("tweet.fields", twitterTweetFields)

	body, err := t.fetcher.get(ctx, t.baseURL+"?"+params.Encode(), map[string]string{headerAuth: "Bearer " + t.bearer})
	if err != nil {
		return nil, err
	}

	var resp twitterSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode twitter response: %w", err)
	}

	items := make([]domain.Item, 0, len(resp.Data))

	for i, tw := range resp.Data {
		if i >= t.limit {
			break
		}

		link := ""
		if tw.ID != "" {
			link = twitterStatusURL + tw.ID
		}

		firstLine, _, _ := strings.Cut(tw.Text, "\n")
		title := htmlutils.Truncate(firstLine, twitterTitleRunes)

		created := tw.CreatedAt
		if created == "" {
			created = t.now().UTC().Format(time.RFC3339)
		}

		items = append(items, domain.Item{
			Title:     twitterPrefix + title,
			Summary:   htmlutils.Truncate(tw.Text, summaryMaxRunes),
			URL:       link,
			Source:    twitterSource,
			Date:      created,
			Tags:      []string{"twitter", "x", "search"},
			Citations: []domain.Citation{{Title: title, URL: link}},
		})
	}

	return items, nil
}
