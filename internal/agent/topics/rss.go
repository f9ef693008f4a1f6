package topics

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSProvider pulls candidates from a set of RSS/Atom feeds. It is the
// backup source when the news API is unconfigured or rate limited.
type RSSProvider struct {
	feeds    []string
	parser   *gofeed.Parser
	window   time.Duration
	maxItems int
}

// DefaultFeeds are general technology and business feeds.
var DefaultFeeds = []string{
	"https://techcrunch.com/feed/",
	"https://www.wired.com/feed/rss",
	"https://feeds.bbci.co.uk/news/business/rss.xml",
	"https://venturebeat.com/feed/",
}

// NewRSSProvider creates an RSS provider over the given feed URLs.
func NewRSSProvider(feeds []string) *RSSProvider {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	return &RSSProvider{
		feeds:    feeds,
		parser:   gofeed.NewParser(),
		window:   24 * time.Hour,
		maxItems: 10,
	}
}

func (p *RSSProvider) Name() string { return "RSS" }

func (p *RSSProvider) Fetch(ctx context.Context) ([]Candidate, error) {
	cutoff := time.Now().Add(-p.window)
	var out []Candidate
	var lastErr error

	for _, feedURL := range p.feeds {
		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = fmt.Errorf("parse feed %s: %w", feedURL, err)
			continue
		}
		for _, item := range feed.Items {
			published := time.Now()
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			}
			if published.Before(cutoff) {
				continue
			}
			c := Candidate{
				Title:       item.Title,
				Description: item.Description,
				Source:      feed.Title,
				URL:         item.Link,
				PublishedAt: published,
				Category:    Categorize(item.Title + " " + item.Description),
				UniqueID:    DeriveUniqueID(item.Title, published),
			}
			if !Usable(c) {
				continue
			}
			out = append(out, c)
			if len(out) >= p.maxItems {
				return out, nil
			}
		}
	}

	if len(out) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("no recent items in any feed")
	}
	return out, nil
}
