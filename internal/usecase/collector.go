package usecase

import (
	"context"
	"time"

	"NewsPulse/internal/domain/models"
	drepo "NewsPulse/internal/domain/repository"
	domsvc "NewsPulse/internal/domain/service"
	"NewsPulse/pkg/logger"
	"NewsPulse/pkg/util"
)

// Collector turns one ticker's feed into scored news items. Feed entries
// published before local midnight of the target day are dropped; a page that
// cannot be fetched drops only its entry, never the ticker.
type Collector struct {
	feed    drepo.NewsFeed
	article drepo.ArticleFetcher
	scorer  domsvc.Scorer
	loc     *time.Location
	log     *logger.Logger
	metrics drepo.Metrics
}

// NewCollector creates a collector. loc is the exchange timezone all publish
// times are converted into.
func NewCollector(feed drepo.NewsFeed, article drepo.ArticleFetcher, scorer domsvc.Scorer, loc *time.Location, log *logger.Logger, metrics drepo.Metrics) *Collector {
	return &Collector{feed: feed, article: article, scorer: scorer, loc: loc, log: log, metrics: metrics}
}

// Collect fetches and scores the feed for one ticker as of asOfDay.
func (c *Collector) Collect(ctx context.Context, ticker string, asOfDay time.Time) ([]*models.NewsItem, error) {
	entries, err := c.feed.Fetch(ctx, ticker)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError("feed_fetch")
		}
		return nil, err
	}

	midnight := util.LocalMidnight(asOfDay, c.loc)
	items := make([]*models.NewsItem, 0, len(entries))
	for _, e := range entries {
		published := e.Published.In(c.loc)
		if published.Before(midnight) {
			continue
		}

		body, err := c.article.BodyText(ctx, e.Link)
		if err != nil {
			c.log.Warn("page fetch failed, skipping entry",
				logger.String("ticker", ticker),
				logger.String("link", e.Link),
				logger.Error(err))
			if c.metrics != nil {
				c.metrics.RecordError("page_fetch")
			}
			continue
		}

		items = append(items, &models.NewsItem{
			Ticker:      ticker,
			PublishTime: published,
			Title:       e.Title,
			Link:        e.Link,
			TitleScores: c.scorer.ScoreText(ctx, e.Title),
			BodyScores:  c.scorer.ScoreText(ctx, body),
		})
		if c.metrics != nil {
			c.metrics.RecordItemCollected(ticker)
		}
	}

	c.log.Debug("ticker collected",
		logger.String("ticker", ticker),
		logger.Int("entries", len(entries)),
		logger.Int("items", len(items)))
	return items, nil
}
