package models

import "time"

// EnrichedRecord is the final per-story row: deduplicated news item joined
// with its price context and per-category aggregate scores. PriceSentiment is
// computed once per item and fanned out to the three per-analyzer price
// columns at export time.
type EnrichedRecord struct {
	Ticker      string
	PublishTime time.Time
	Title       string
	Link        string

	TitleScores SentimentSet
	BodyScores  SentimentSet

	PriceSentiment *float64

	Price10MinBefore *float64
	PriceAtNews      *float64
	PriceAfter       *float64
	TrendBeforePct   *float64
	TrendAfterPct    *float64
	MinutesAfter     *float64
	MarketStatus     MarketStatus

	AggregateTitle *float64
	AggregateBody  *float64
	AggregatePrice *float64
}

// CategoryScores returns the three analyzer scores for a category. For the
// price category all three slots carry the same adjusted value.
func (r *EnrichedRecord) CategoryScores(c Category) []*float64 {
	switch c {
	case CategoryTitle:
		return []*float64{r.TitleScores.NLTK, r.TitleScores.FinVADER, r.TitleScores.FinBERT}
	case CategoryBody:
		return []*float64{r.BodyScores.NLTK, r.BodyScores.FinVADER, r.BodyScores.FinBERT}
	case CategoryPrice:
		return []*float64{r.PriceSentiment, r.PriceSentiment, r.PriceSentiment}
	}
	return nil
}

// Aggregate returns the aggregate value for a category.
func (r *EnrichedRecord) Aggregate(c Category) *float64 {
	switch c {
	case CategoryTitle:
		return r.AggregateTitle
	case CategoryBody:
		return r.AggregateBody
	case CategoryPrice:
		return r.AggregatePrice
	}
	return nil
}

// ScreenerRecord is one row of the screener export; the pipeline reads only
// the ticker join key, relative volume, and screener price.
type ScreenerRecord struct {
	Ticker         string
	RelativeVolume *float64
	Price          *float64
}

// UniverseRow is one row of the ticker-universe file produced by the
// screener stage and consumed by the news stage.
type UniverseRow struct {
	Ticker         string
	Date           time.Time
	Title          string
	RelativeVolume *float64
	ScreenerPrice  *float64
	CurrentPrice   *float64
	TrendDollar    *float64
}
