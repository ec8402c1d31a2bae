package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/platform/htmlutils"
)

const (
	githubSearchURL  = "https://api.github.com/search/issues"
	githubMaxPerPage = 30
	githubAccept     = "application/vnd.github+json"
	githubSource     = "GitHub"
	githubPrefix     = "[GitHub] "
)

// GitHub searches issues and pull requests.
type GitHub struct {
	query   string
	limit   int
	token   string
	baseURL string
	fetcher httpFetcher
	now     func() time.Time
}

// NewGitHub creates an issue-search collector. token is optional.
func NewGitHub(query string, limit int, token string, client *http.Client) *GitHub {
	return &GitHub{
		query:   query,
		limit:   limit,
		token:   token,
		baseURL: githubSearchURL,
		fetcher: newHTTPFetcher(client, ""),
		now:     time.Now,
	}
}

func (g *GitHub) Name() string {
	return "github"
}

type githubSearchResponse struct {
	Items []struct {
		Title     string `json:"title"`
		HTMLURL   string `json:"html_url"`
		Body      string `json:"body"`
		CreatedAt string `json:"created_at"`
	} `json:"items"`
}

func (g *GitHub) Collect(ctx context.Context) ([]domain.Item, error) {
	params := url.Values{}
	params.Set("q", g.query)
	params.Set("per_page", strconv.Itoa(min(g.limit, githubMaxPerPage)))

	headers := map[string]string{headerAccept: githubAccept}
	if g.token != "" {
		headers[headerAuth] = "Bearer " + g.token
	}

	body, err := g.fetcher.get(ctx, g.baseURL+"?"+params.Encode(), headers)
	if err != nil {
		return nil, err
	}

	var resp githubSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode github response: %w", err)
	}

	items := make([]domain.Item, 0, len(resp.Items))

	for i, x := range resp.Items {
		if i >= g.limit {
			break
		}

		created := x.CreatedAt
		if created == "" {
			created = g.now().UTC().Format(time.RFC3339)
		}

		items = append(items, domain.Item{
			Title:     githubPrefix + x.Title,
			Summary:   htmlutils.Truncate(x.Body, summaryMaxRunes),
			URL:       x.HTMLURL,
			Source:    githubSource,
			Date:      created,
			Tags:      []string{"github", "search"},
			Citations: []domain.Citation{{Title: x.Title, URL: x.HTMLURL}},
		})
	}

	return items, nil
}
