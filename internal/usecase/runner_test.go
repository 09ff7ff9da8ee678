package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"NewsPulse/internal/domain/models"
	drepo "NewsPulse/internal/domain/repository"
	"NewsPulse/internal/service/ratelimit"
)

type fakeFeed struct {
	entries map[string][]drepo.FeedEntry
}

func (f *fakeFeed) Fetch(_ context.Context, ticker string) ([]drepo.FeedEntry, error) {
	return f.entries[ticker], nil
}

type fakeArticle struct {
	body     string
	failLink string
}

func (f *fakeArticle) BodyText(_ context.Context, link string) (string, error) {
	if f.failLink != "" && link == f.failLink {
		return "", errors.New("page unreachable")
	}
	return f.body, nil
}

type fakeScorer struct{ v float64 }

func (f *fakeScorer) ScoreText(context.Context, string) models.SentimentSet {
	v := f.v
	return models.SentimentSet{NLTK: &v, FinVADER: &v, FinBERT: &v}
}

func TestRunnerMergesSameStoryAcrossTickers(t *testing.T) {
	ny := nyLoc(t)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, ny)
	tEarly := time.Date(2024, 5, 1, 11, 0, 0, 0, ny)
	tLate := tEarly.Add(3 * time.Minute)

	feed := &fakeFeed{entries: map[string][]drepo.FeedEntry{
		"AAA": {{Title: "X", Link: "Y", Published: tEarly}},
		"BBB": {{Title: "X", Link: "Y", Published: tLate}},
	}}
	bars := &fakeBars{bars: []models.Bar{
		{Time: tEarly.Add(-5 * time.Minute), Close: 100},
		{Time: tEarly.Add(8 * time.Minute), Close: 103},
	}}

	collector := NewCollector(feed, &fakeArticle{body: "good quarter"}, &fakeScorer{v: 0.3}, ny, testLogger(t), nil)
	sampler := NewTrendSampler(bars, testLogger(t), nil, func() time.Time { return tEarly.Add(time.Hour) })
	runner := NewRunner(collector, sampler, ratelimit.New(), nil, nil, testLogger(t), nil, time.Millisecond, "none")

	records, err := runner.Run(context.Background(), []string{"AAA", "BBB"}, day)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 merged story", len(records))
	}
	r := records[0]
	if r.Ticker != "AAA,BBB" {
		t.Errorf("ticker = %q, want AAA,BBB", r.Ticker)
	}
	if !r.PublishTime.Equal(tEarly) {
		t.Errorf("publish time = %v, want earliest %v", r.PublishTime, tEarly)
	}
	if r.MarketStatus != models.MarketOpen {
		t.Errorf("status = %v, want Open", r.MarketStatus)
	}
	if r.AggregateTitle == nil || r.AggregateBody == nil || r.AggregatePrice == nil {
		t.Errorf("open-market record must have all aggregates, got %+v", r)
	}
}

func TestRunnerFiltersItemsBeforeMidnight(t *testing.T) {
	ny := nyLoc(t)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, ny)

	feed := &fakeFeed{entries: map[string][]drepo.FeedEntry{
		"AAA": {
			{Title: "old", Link: "L1", Published: day.Add(-2 * time.Hour)},
			{Title: "new", Link: "L2", Published: day.Add(10 * time.Hour)},
		},
	}}
	collector := NewCollector(feed, &fakeArticle{body: "b"}, &fakeScorer{v: 0}, ny, testLogger(t), nil)
	sampler := NewTrendSampler(&fakeBars{}, testLogger(t), nil, nil)
	runner := NewRunner(collector, sampler, ratelimit.New(), nil, nil, testLogger(t), nil, time.Millisecond, "none")

	records, err := runner.Run(context.Background(), []string{"AAA"}, day)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != 1 || records[0].Title != "new" {
		t.Fatalf("got %+v, want only the same-day item", records)
	}
}

func TestCollectorSkipsEntryOnPageFetchFailure(t *testing.T) {
	ny := nyLoc(t)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, ny)
	feed := &fakeFeed{entries: map[string][]drepo.FeedEntry{
		"AAA": {
			{Title: "broken", Link: "bad", Published: day.Add(10 * time.Hour)},
			{Title: "fine", Link: "good", Published: day.Add(11 * time.Hour)},
		},
	}}
	collector := NewCollector(feed, &fakeArticle{body: "b", failLink: "bad"}, &fakeScorer{v: 0.1}, ny, testLogger(t), nil)

	items, err := collector.Collect(context.Background(), "AAA", day)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(items) != 1 || items[0].Title != "fine" {
		t.Fatalf("got %+v, want only the entry whose page loaded", items)
	}
}

func TestRunnerNoItems(t *testing.T) {
	ny := nyLoc(t)
	collector := NewCollector(&fakeFeed{}, &fakeArticle{}, &fakeScorer{}, ny, testLogger(t), nil)
	sampler := NewTrendSampler(&fakeBars{}, testLogger(t), nil, nil)
	runner := NewRunner(collector, sampler, ratelimit.New(), nil, nil, testLogger(t), nil, time.Millisecond, "none")

	records, err := runner.Run(context.Background(), []string{"AAA"}, time.Now())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want none", len(records))
	}
}

func TestRunnerSortsNewestFirst(t *testing.T) {
	ny := nyLoc(t)
	day := time.Date(2024, 5, 3, 0, 0, 0, 0, ny) // Friday
	feed := &fakeFeed{entries: map[string][]drepo.FeedEntry{
		"AAA": {
			{Title: "first", Link: "L1", Published: day.Add(10 * time.Hour)},
			{Title: "second", Link: "L2", Published: day.Add(12 * time.Hour)},
		},
	}}
	collector := NewCollector(feed, &fakeArticle{body: "b"}, &fakeScorer{v: 0.1}, ny, testLogger(t), nil)
	sampler := NewTrendSampler(&fakeBars{}, testLogger(t), nil, nil)
	runner := NewRunner(collector, sampler, ratelimit.New(), nil, nil, testLogger(t), nil, time.Millisecond, "none")

	records, err := runner.Run(context.Background(), []string{"AAA"}, day)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Title != "second" || records[1].Title != "first" {
		t.Errorf("order = %q, %q; want newest first", records[0].Title, records[1].Title)
	}
}
