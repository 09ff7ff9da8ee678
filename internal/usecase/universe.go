package usecase

import (
	"context"
	"sort"
	"time"

	"NewsPulse/internal/domain/models"
	drepo "NewsPulse/internal/domain/repository"
	"NewsPulse/internal/service/screener"
	"NewsPulse/pkg/logger"
	"NewsPulse/pkg/util"
)

// UniverseBuilder runs the screener stage: it joins the news export with
// screener fundamentals, stamps a current price per ticker, and produces the
// ticker-universe rows the news stage later reads.
type UniverseBuilder struct {
	screener *screener.Client
	quotes   drepo.QuoteStream
	bars     drepo.BarSource
	log      *logger.Logger
	metrics  drepo.Metrics
	now      func() time.Time

	// QuoteWarmup is how long to let the quote tape fill after subscribing
	// before prices are read.
	QuoteWarmup time.Duration
}

// NewUniverseBuilder creates a builder. quotes may be nil; prices then come
// only from the bar-source fallback.
func NewUniverseBuilder(sc *screener.Client, quotes drepo.QuoteStream, bars drepo.BarSource, log *logger.Logger, metrics drepo.Metrics, now func() time.Time) *UniverseBuilder {
	if now == nil {
		now = time.Now
	}
	return &UniverseBuilder{
		screener:    sc,
		quotes:      quotes,
		bars:        bars,
		log:         log,
		metrics:     metrics,
		now:         now,
		QuoteWarmup: 3 * time.Second,
	}
}

// Build produces universe rows sorted by date descending with duplicate
// (ticker, title) pairs dropped.
func (b *UniverseBuilder) Build(ctx context.Context) ([]models.UniverseRow, error) {
	news, err := b.screener.NewsExport(ctx)
	if err != nil {
		return nil, err
	}
	screenerRows, err := b.screener.ScreenerExport(ctx)
	if err != nil {
		return nil, err
	}

	byTicker := make(map[string]models.ScreenerRecord, len(screenerRows))
	for _, r := range screenerRows {
		byTicker[r.Ticker] = r
	}

	// One row per (news row, ticker): exploded comma-joined lists.
	var rows []models.UniverseRow
	seenTickers := make(map[string]struct{})
	for _, n := range news {
		for _, ticker := range util.SplitTickers(n.Tickers) {
			row := models.UniverseRow{Ticker: ticker, Date: n.Date, Title: n.Title}
			if s, ok := byTicker[ticker]; ok {
				row.RelativeVolume = s.RelativeVolume
				row.ScreenerPrice = s.Price
			}
			rows = append(rows, row)
			seenTickers[ticker] = struct{}{}
		}
	}

	tickers := make([]string, 0, len(seenTickers))
	for t := range seenTickers {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	prices := b.currentPrices(ctx, tickers)
	for i := range rows {
		cur, ok := prices[rows[i].Ticker]
		if !ok {
			continue
		}
		rows[i].CurrentPrice = ptr(cur)
		if rows[i].ScreenerPrice != nil {
			rows[i].TrendDollar = ptr(cur - *rows[i].ScreenerPrice)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })

	// Keep the newest row per (ticker, title).
	type rowKey struct{ ticker, title string }
	seen := make(map[rowKey]struct{}, len(rows))
	out := rows[:0]
	for _, r := range rows {
		k := rowKey{r.Ticker, r.Title}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}

	b.log.Info("universe built",
		logger.Int("tickers", len(tickers)),
		logger.Int("rows", len(out)))
	return out, nil
}

// currentPrices resolves a live price per ticker from the quote tape,
// falling back per ticker to the latest bar close of the past day.
func (b *UniverseBuilder) currentPrices(ctx context.Context, tickers []string) map[string]float64 {
	prices := make(map[string]float64, len(tickers))

	if b.quotes != nil && b.quotes.IsConnected() {
		if err := b.quotes.Subscribe(ctx, tickers); err != nil {
			b.log.Warn("quote subscribe failed", logger.Error(err))
		} else {
			select {
			case <-ctx.Done():
				return prices
			case <-time.After(b.QuoteWarmup):
			}
			for _, t := range tickers {
				if p, ok := b.quotes.LastPrice(t); ok {
					prices[t] = p
				}
			}
		}
	}

	for _, t := range tickers {
		if _, ok := prices[t]; ok {
			continue
		}
		now := b.now()
		bars, err := b.bars.MinuteBars(ctx, t, now.Add(-24*time.Hour), now)
		if err != nil || len(bars) == 0 {
			if err != nil {
				b.log.Warn("price fallback failed", logger.String("ticker", t), logger.Error(err))
				if b.metrics != nil {
					b.metrics.RecordError("price_fallback")
				}
			}
			continue
		}
		prices[t] = bars[len(bars)-1].Close
	}
	return prices
}
