package usecase

import (
	"context"
	"fmt"
	"time"

	"NewsPulse/internal/domain/models"
	drepo "NewsPulse/internal/domain/repository"
	"NewsPulse/pkg/logger"
)

const trendWindow = 10 * time.Minute

// TrendSampler computes the price context around a news timestamp from
// minute bars. Sampling never fails the pipeline: upstream problems come
// back as a tagged Error sample.
type TrendSampler struct {
	bars    drepo.BarSource
	log     *logger.Logger
	metrics drepo.Metrics
	now     func() time.Time
}

// NewTrendSampler creates a sampler. now is injectable for tests; nil means
// time.Now.
func NewTrendSampler(bars drepo.BarSource, log *logger.Logger, metrics drepo.Metrics, now func() time.Time) *TrendSampler {
	if now == nil {
		now = time.Now
	}
	return &TrendSampler{bars: bars, log: log, metrics: metrics, now: now}
}

// Sample returns the price trend around newsTime. newsTime must be
// exchange-local. Outside trading hours, or when no bars exist in the
// window, the result is Closed; a failed bar fetch is Error.
func (s *TrendSampler) Sample(ctx context.Context, ticker string, newsTime time.Time) models.TrendSample {
	if !IsTradingHours(newsTime) {
		return models.ClosedSample()
	}

	from := newsTime.Add(-trendWindow)
	to := newsTime.Add(trendWindow)
	if now := s.now(); to.After(now) {
		to = now
	}

	start := time.Now()
	bars, err := s.bars.MinuteBars(ctx, ticker, from, to)
	if s.metrics != nil {
		s.metrics.RecordLatency("minute_bars", time.Since(start).Seconds())
	}
	if err != nil {
		s.log.Warn("bar fetch failed", logger.String("ticker", ticker), logger.Error(err))
		if s.metrics != nil {
			s.metrics.RecordError("bar_fetch")
		}
		return models.ErrorSample(err)
	}
	if len(bars) == 0 {
		return models.ClosedSample()
	}

	before := bars[0].Close
	after := bars[len(bars)-1].Close
	atNews := asOfClose(bars, newsTime)
	if before == 0 || atNews == 0 {
		return models.ErrorSample(fmt.Errorf("zero close price for %s around %s", ticker, newsTime))
	}

	minutesAfter := to.Sub(newsTime).Minutes()
	if minutesAfter > trendWindow.Minutes() {
		minutesAfter = trendWindow.Minutes()
	}

	return models.OpenSample(&models.PriceTrend{
		Ticker:           ticker,
		NewsTime:         newsTime,
		Price10MinBefore: before,
		PriceAtNews:      atNews,
		PriceAfter:       after,
		TrendBeforePct:   (atNews - before) / before * 100,
		TrendAfterPct:    (after - atNews) / atNews * 100,
		MinutesAfter:     minutesAfter,
	})
}

// asOfClose returns the close of the last bar at or before t. When every bar
// is after t (feed started late in the window) the first bar stands in.
func asOfClose(bars []models.Bar, t time.Time) float64 {
	price := bars[0].Close
	for _, b := range bars {
		if b.Time.After(t) {
			break
		}
		price = b.Close
	}
	return price
}

// AdjustForTrend maps a post-news trend percentage onto a sentiment-like
// value in [-1, 1]. A positive trend starts from +0.1, a flat or negative
// trend from -0.1, then each percent moves the value by 0.01.
func AdjustForTrend(trendAfterPct float64) float64 {
	var v float64
	if trendAfterPct > 0 {
		adj := 0.01 * trendAfterPct
		if adj > 1 {
			adj = 1
		}
		v = 0.1 + adj
	} else {
		adj := 0.01 * trendAfterPct
		if adj < -1 {
			adj = -1
		}
		v = -0.1 + adj
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
