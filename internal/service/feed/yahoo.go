package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	drepo "NewsPulse/internal/domain/repository"

	"github.com/mmcdole/gofeed"
)

// Client fetches per-ticker headline RSS feeds.
type Client struct {
	baseURL string
	region  string
	lang    string
	parser  *gofeed.Parser
	loc     *time.Location
}

// New creates a feed client. Timestamps in returned entries are converted to loc.
func New(baseURL, region, lang string, timeout time.Duration, loc *time.Location) drepo.NewsFeed {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &Client{
		baseURL: baseURL,
		region:  region,
		lang:    lang,
		parser:  parser,
		loc:     loc,
	}
}

// Fetch downloads and parses the feed for one ticker.
func (c *Client) Fetch(ctx context.Context, ticker string) ([]drepo.FeedEntry, error) {
	q := url.Values{}
	q.Set("s", ticker)
	q.Set("region", c.region)
	q.Set("lang", c.lang)
	feedURL := fmt.Sprintf("%s?%s", c.baseURL, q.Encode())

	parsed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", ticker, err)
	}

	entries := make([]drepo.FeedEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		published, ok := entryTime(item)
		if !ok {
			// Entry without a parseable timestamp cannot be price-sampled.
			continue
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		entries = append(entries, drepo.FeedEntry{
			Title:     item.Title,
			Link:      item.Link,
			Published: published.In(c.loc),
		})
	}
	return entries, nil
}

func entryTime(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, true
	}
	if item.Published != "" {
		// RFC-822 style used by headline feeds.
		if t, err := time.Parse(time.RFC1123Z, item.Published); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
