package models

import "time"

// MarketStatus reports the outcome of a price-trend sample.
type MarketStatus string

const (
	MarketOpen   MarketStatus = "Open"
	MarketClosed MarketStatus = "Closed"
	MarketError  MarketStatus = "Error"
)

// PriceTrend holds the price context around a news timestamp. Populated only
// when the market was open and bars were available.
type PriceTrend struct {
	Ticker           string
	NewsTime         time.Time
	Price10MinBefore float64
	PriceAtNews      float64
	PriceAfter       float64
	TrendBeforePct   float64
	TrendAfterPct    float64
	MinutesAfter     float64 // <= 10
}

// TrendSample is the tagged result of sampling: Open carries a PriceTrend,
// Closed means outside trading hours or no bars in the window, Error keeps
// the upstream cause so callers can tell "expected closed" from "feed broke".
type TrendSample struct {
	Status MarketStatus
	Trend  *PriceTrend
	Err    error
}

// ClosedSample returns a sample for a closed (or bar-less) market window.
func ClosedSample() TrendSample {
	return TrendSample{Status: MarketClosed}
}

// ErrorSample returns a sample for a failed bar fetch.
func ErrorSample(err error) TrendSample {
	return TrendSample{Status: MarketError, Err: err}
}

// OpenSample returns a populated sample.
func OpenSample(t *PriceTrend) TrendSample {
	return TrendSample{Status: MarketOpen, Trend: t}
}

// Bar is one minute-resolution price bar from the market-data feed.
type Bar struct {
	Time  time.Time
	Close float64
}
