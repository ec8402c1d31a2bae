package collectors

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/platform/htmlutils"
)

const maxFeedEntries = 20

// RSS reads an RSS or Atom feed.
type RSS struct {
	name    string
	feedURL string
	fetcher httpFetcher
	parser  *gofeed.Parser
}

// NewRSS creates a feed collector. name becomes the item source.
func NewRSS(name, feedURL string, client *http.Client) *RSS {
	return &RSS{
		name:    name,
		feedURL: feedURL,
		fetcher: newHTTPFetcher(client, ""),
		parser:  gofeed.NewParser(),
	}
}

func (r *RSS) Name() string {
	return "rss:" + r.name
}

// Collect returns up to the first twenty feed entries.
func (r *RSS) Collect(ctx context.Context) ([]domain.Item, error) {
	body, err := r.fetcher.get(ctx, r.feedURL, nil)
	if err != nil {
		return nil, err
	}

	feed, err := r.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.Item, 0, min(len(feed.Items), maxFeedEntries))

	for i, entry := range feed.Items {
		if i >= maxFeedEntries {
			break
		}

		summary := htmlutils.StripHTMLTags(entry.Description)
		content := htmlutils.StripHTMLTags(entry.Content)

		if content == "" {
			content = summary
		}

		items = append(items, domain.Item{
			Title:   htmlutils.StripHTMLTags(entry.Title),
			Summary: summary,
			Content: content,
			URL:     strings.TrimSpace(entry.Link),
			Source:  r.name,
			Date:    entryDate(entry),
			Tags:    entry.Categories,
		})
	}

	return items, nil
}

func entryDate(entry *gofeed.Item) string {
	switch {
	case entry.PublishedParsed != nil:
		return entry.PublishedParsed.UTC().Format(time.RFC3339)
	case entry.UpdatedParsed != nil:
		return entry.UpdatedParsed.UTC().Format(time.RFC3339)
	case entry.Published != "":
		return entry.Published
	default:
		return entry.Updated
	}
}
