package usecase

import (
	"NewsPulse/internal/domain/models"
	"NewsPulse/pkg/util"
)

// Deduplicate merges items that carry the same story under multiple tickers.
// For each (title, link) group the earliest item survives and its ticker
// field becomes the sorted, deduplicated, comma-joined union of the group's
// tickers. Survivors keep first-seen order.
func Deduplicate(items []*models.NewsItem) []*models.NewsItem {
	type group struct {
		survivor *models.NewsItem
		tickers  []string
	}

	order := make([]models.Key, 0, len(items))
	groups := make(map[models.Key]*group, len(items))

	for _, item := range items {
		key := item.StoryKey()
		g, ok := groups[key]
		if !ok {
			g = &group{survivor: item}
			groups[key] = g
			order = append(order, key)
		} else if item.PublishTime.Before(g.survivor.PublishTime) {
			g.survivor = item
		}
		g.tickers = append(g.tickers, util.SplitTickers(item.Ticker)...)
	}

	out := make([]*models.NewsItem, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.survivor.Ticker = util.JoinTickers(g.tickers)
		out = append(out, g.survivor)
	}
	return out
}
