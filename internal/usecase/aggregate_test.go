package usecase

import (
	"math"
	"testing"
	"time"

	"NewsPulse/internal/domain/models"
)

func f(v float64) *float64 { return &v }

func TestBuildRecordAggregatesTitle(t *testing.T) {
	item := &models.NewsItem{
		Ticker:      "AAA",
		PublishTime: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
		Title:       "X",
		Link:        "Y",
		TitleScores: models.SentimentSet{NLTK: f(0.2), FinVADER: f(-0.4), FinBERT: f(0.6)},
	}
	r := BuildRecord(item, models.ClosedSample())

	if r.AggregateTitle == nil {
		t.Fatal("aggregate title is nil")
	}
	if got := *r.AggregateTitle; math.Abs(got-0.4/3) > 1e-9 {
		t.Errorf("aggregate title = %v, want %v", got, 0.4/3)
	}
}

func TestBuildRecordSkipsNilScores(t *testing.T) {
	item := &models.NewsItem{
		BodyScores: models.SentimentSet{NLTK: f(0.5), FinBERT: nil, FinVADER: nil},
	}
	r := BuildRecord(item, models.ClosedSample())
	if r.AggregateBody == nil || *r.AggregateBody != 0.5 {
		t.Errorf("aggregate body = %v, want mean over present scores 0.5", r.AggregateBody)
	}
	if r.AggregateTitle != nil {
		t.Errorf("all-nil category must aggregate to nil, got %v", *r.AggregateTitle)
	}
}

func TestBuildRecordClosedMarket(t *testing.T) {
	item := &models.NewsItem{Ticker: "AAA"}
	r := BuildRecord(item, models.ClosedSample())

	if r.MarketStatus != models.MarketClosed {
		t.Errorf("status = %v, want Closed", r.MarketStatus)
	}
	for name, v := range map[string]*float64{
		"price_10_min_before": r.Price10MinBefore,
		"price_at_news":       r.PriceAtNews,
		"price_after":         r.PriceAfter,
		"trend_before":        r.TrendBeforePct,
		"trend_after":         r.TrendAfterPct,
		"minutes_after":       r.MinutesAfter,
		"price_sentiment":     r.PriceSentiment,
		"aggregate_price":     r.AggregatePrice,
	} {
		if v != nil {
			t.Errorf("%s = %v, want nil on closed market", name, *v)
		}
	}
}

func TestBuildRecordOpenMarketFansOutPriceSentiment(t *testing.T) {
	item := &models.NewsItem{Ticker: "AAA"}
	sample := models.OpenSample(&models.PriceTrend{
		Price10MinBefore: 100,
		PriceAtNews:      102,
		PriceAfter:       104,
		TrendBeforePct:   2,
		TrendAfterPct:    50,
		MinutesAfter:     10,
	})
	r := BuildRecord(item, sample)

	if r.PriceSentiment == nil || math.Abs(*r.PriceSentiment-0.6) > 1e-9 {
		t.Fatalf("price sentiment = %v, want 0.6", r.PriceSentiment)
	}
	slots := r.CategoryScores(models.CategoryPrice)
	if len(slots) != 3 {
		t.Fatalf("got %d price slots, want 3", len(slots))
	}
	for i, s := range slots {
		if s == nil || *s != *r.PriceSentiment {
			t.Errorf("price slot %d = %v, want the single adjusted value", i, s)
		}
	}
	if r.AggregatePrice == nil || math.Abs(*r.AggregatePrice-0.6) > 1e-9 {
		t.Errorf("aggregate price = %v, want 0.6", r.AggregatePrice)
	}
	if r.PriceAtNews == nil || *r.PriceAtNews != 102 {
		t.Errorf("price at news = %v, want 102", r.PriceAtNews)
	}
}
