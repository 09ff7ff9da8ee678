package usecase

import (
	"NewsPulse/internal/domain/models"
)

// meanScores averages the non-nil scores. All-nil input yields nil so an
// unscored category stays empty instead of reading as neutral.
func meanScores(scores []*float64) *float64 {
	var sum float64
	n := 0
	for _, s := range scores {
		if s == nil {
			continue
		}
		sum += *s
		n++
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

// BuildRecord joins a deduplicated item with its trend sample into the final
// record. The price sentiment is derived once from the post-news trend and
// fanned out to all three analyzer slots; a Closed or Error sample leaves
// every price field nil.
func BuildRecord(item *models.NewsItem, sample models.TrendSample) *models.EnrichedRecord {
	r := &models.EnrichedRecord{
		Ticker:       item.Ticker,
		PublishTime:  item.PublishTime,
		Title:        item.Title,
		Link:         item.Link,
		TitleScores:  item.TitleScores,
		BodyScores:   item.BodyScores,
		MarketStatus: sample.Status,
	}

	if sample.Status == models.MarketOpen && sample.Trend != nil {
		t := sample.Trend
		r.Price10MinBefore = ptr(t.Price10MinBefore)
		r.PriceAtNews = ptr(t.PriceAtNews)
		r.PriceAfter = ptr(t.PriceAfter)
		r.TrendBeforePct = ptr(t.TrendBeforePct)
		r.TrendAfterPct = ptr(t.TrendAfterPct)
		r.MinutesAfter = ptr(t.MinutesAfter)
		r.PriceSentiment = ptr(AdjustForTrend(t.TrendAfterPct))
	}

	r.AggregateTitle = meanScores(r.CategoryScores(models.CategoryTitle))
	r.AggregateBody = meanScores(r.CategoryScores(models.CategoryBody))
	r.AggregatePrice = meanScores(r.CategoryScores(models.CategoryPrice))
	return r
}

func ptr(v float64) *float64 { return &v }
