package collectors

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/platform/htmlutils"
)

const maxArticleContentRunes = 4000

// Article extracts a single article page with the reader-mode algorithm.
type Article struct {
	name       string
	articleURL string
	fetcher    httpFetcher
}

// NewArticle creates a single-page collector.
func NewArticle(name, articleURL string, client *http.Client) *Article {
	return &Article{
		name:       name,
		articleURL: articleURL,
		fetcher:    newHTTPFetcher(client, ""),
	}
}

func (a *Article) Name() string {
	return "article:" + a.articleURL
}

func (a *Article) Collect(ctx context.Context) ([]domain.Item, error) {
	u, err := url.Parse(a.articleURL)
	if err != nil {
		return nil, fmt.Errorf("parse article url: %w", err)
	}

	body, err := a.fetcher.get(ctx, a.articleURL, nil)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}

	var date, description string

	if doc, docErr := goquery.NewDocumentFromReader(bytes.NewReader(body)); docErr == nil {
		date = publishedMeta(doc)
		description = metaDescription(doc)
	}

	if date == "" {
		if article.PublishedTime != nil && !article.PublishedTime.IsZero() {
			date = article.PublishedTime.UTC().Format(time.RFC3339)
		}
	}

	var tags []string
	if byline := strings.TrimSpace(article.Byline); byline != "" {
		tags = append(tags, "by:"+byline)
	}

	return []domain.Item{{
		Title:   article.Title,
		Summary: htmlutils.Truncate(domain.CollapseSpace(description), summaryMaxRunes),
		Content: htmlutils.Truncate(domain.CollapseSpace(article.TextContent), maxArticleContentRunes),
		URL:     a.articleURL,
		Source:  a.name,
		Date:    date,
		Tags:    tags,
	}}, nil
}

func metaDescription(doc *goquery.Document) string {
	for _, sel := range []string{`meta[property="og:description"]`, `meta[name="description"]`} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
