package collectors

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/lueurxax/search-intel-brief/internal/core/dates"
	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// ScrapeProfile selects how a listing page is read.
type ScrapeProfile string

// Scrape profiles.
const (
	ProfileCards    ScrapeProfile = "cards"
	ProfileArticles ScrapeProfile = "articles"
	ProfileGeneric  ScrapeProfile = "generic"
)

type profileRules struct {
	selector    string
	maxNodes    int
	minTitleLen int
	source      string
}

var profiles = map[ScrapeProfile]profileRules{
	ProfileCards:    {selector: "article, div.post, div.card, li", maxNodes: 15, minTitleLen: 8, source: "Flipkart Tech"},
	ProfileArticles: {selector: "article a, h2 a, h3 a", maxNodes: 20, minTitleLen: 1, source: "Target Tech"},
	ProfileGeneric:  {selector: "a", minTitleLen: 12},
}

// ProfileForURL picks the profile for a listing page by host.
func ProfileForURL(pageURL string) ScrapeProfile {
	lower := strings.ToLower(pageURL)

	switch {
	case strings.Contains(lower, "flipkart"):
		return ProfileCards
	case strings.Contains(lower, "tech.target.com"):
		return ProfileArticles
	default:
		return ProfileGeneric
	}
}

// Scrape reads post links from an HTML listing page.
type Scrape struct {
	name    string
	pageURL string
	profile ScrapeProfile
	fetcher httpFetcher
}

// NewScrape creates a listing-page collector. An empty profile is derived from the URL.
func NewScrape(name, pageURL string, profile ScrapeProfile, client *http.Client) *Scrape {
	if profile == "" {
		profile = ProfileForURL(pageURL)
	}

	return &Scrape{
		name:    name,
		pageURL: pageURL,
		profile: profile,
		fetcher: newHTTPFetcher(client, ""),
	}
}

func (s *Scrape) Name() string {
	return "scrape:" + s.pageURL
}

func (s *Scrape) Collect(ctx context.Context) ([]domain.Item, error) {
	rules, ok := profiles[s.profile]
	if !ok {
		return nil, fmt.Errorf("unknown scrape profile %q", s.profile)
	}

	base, err := url.Parse(s.pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	body, err := s.fetcher.get(ctx, s.pageURL, nil)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	source := s.name
	if source == "" {
		source = rules.source
	}

	if source == "" {
		source = s.pageURL
	}

	var (
		items []domain.Item
		seen  = make(map[string]bool)
	)

	doc.Find(rules.selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if rules.maxNodes > 0 && i >= rules.maxNodes {
			return false
		}

		anchor := sel
		if !sel.Is("a") {
			anchor = sel.Find("a").First()
		}

		href, ok := anchor.Attr("href")
		title := domain.CollapseSpace(anchor.Text())

		if !ok || strings.TrimSpace(href) == "" || utf8.RuneCountInString(title) < rules.minTitleLen {
			return true
		}

		if s.profile == ProfileArticles {
			if seen[title] {
				return true
			}

			seen[title] = true
		}

		items = append(items, domain.Item{
			Title:  title,
			URL:    resolveHref(base, href),
			Source: source,
		})

		return true
	})

	return items, nil
}

func resolveHref(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}

// publishedMeta reads the article publication time from common meta tags.
func publishedMeta(doc *goquery.Document) string {
	for _, sel := range []string{
		`meta[property="article:published_time"]`,
		`meta[name="pubdate"]`,
		`meta[name="date"]`,
		`meta[itemprop="datePublished"]`,
	} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			if t := dates.Parse(v); !t.IsZero() {
				return t.Format(time.RFC3339)
			}
		}
	}

	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if t := dates.Parse(v); !t.IsZero() {
			return t.Format(time.RFC3339)
		}
	}

	return ""
}
