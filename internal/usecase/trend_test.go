package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"NewsPulse/internal/domain/models"
	"NewsPulse/pkg/logger"
)

type fakeBars struct {
	bars []models.Bar
	err  error

	gotFrom, gotTo time.Time
}

func (f *fakeBars) MinuteBars(_ context.Context, _ string, from, to time.Time) ([]models.Bar, error) {
	f.gotFrom, f.gotTo = from, to
	return f.bars, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func nyLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return loc
}

func TestAdjustForTrend(t *testing.T) {
	cases := []struct {
		pct  float64
		want float64
	}{
		{0, -0.1},
		{50, 0.6},
		{-200, -1.0},
		{200, 1.0},
		{-50, -0.6},
		{1, 0.11},
	}
	for _, tc := range cases {
		if got := AdjustForTrend(tc.pct); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("AdjustForTrend(%v) = %v, want %v", tc.pct, got, tc.want)
		}
	}
}

func TestSampleClosedMarket(t *testing.T) {
	ny := nyLoc(t)
	s := NewTrendSampler(&fakeBars{}, testLogger(t), nil, nil)

	// Saturday noon.
	sample := s.Sample(context.Background(), "AAPL", time.Date(2024, 5, 4, 12, 0, 0, 0, ny))
	if sample.Status != models.MarketClosed {
		t.Fatalf("status = %v, want Closed", sample.Status)
	}
	if sample.Trend != nil {
		t.Errorf("closed sample must carry no trend, got %+v", sample.Trend)
	}
}

func TestSampleEmptyBarsMeansClosed(t *testing.T) {
	ny := nyLoc(t)
	s := NewTrendSampler(&fakeBars{}, testLogger(t), nil, nil)

	sample := s.Sample(context.Background(), "AAPL", time.Date(2024, 5, 1, 11, 0, 0, 0, ny))
	if sample.Status != models.MarketClosed {
		t.Fatalf("status = %v, want Closed on empty bars", sample.Status)
	}
}

func TestSampleBarFetchError(t *testing.T) {
	ny := nyLoc(t)
	s := NewTrendSampler(&fakeBars{err: errors.New("boom")}, testLogger(t), nil, nil)

	sample := s.Sample(context.Background(), "AAPL", time.Date(2024, 5, 1, 11, 0, 0, 0, ny))
	if sample.Status != models.MarketError {
		t.Fatalf("status = %v, want Error", sample.Status)
	}
	if sample.Err == nil {
		t.Error("error sample must keep the cause")
	}
}

func TestSampleZeroCloseIsError(t *testing.T) {
	ny := nyLoc(t)
	newsTime := time.Date(2024, 5, 1, 11, 0, 0, 0, ny)
	bars := &fakeBars{bars: []models.Bar{
		{Time: newsTime.Add(-10 * time.Minute), Close: 0},
		{Time: newsTime.Add(5 * time.Minute), Close: 104},
	}}
	s := NewTrendSampler(bars, testLogger(t), nil, nil)

	sample := s.Sample(context.Background(), "AAPL", newsTime)
	if sample.Status != models.MarketError {
		t.Fatalf("status = %v, want Error on zero close", sample.Status)
	}
	if sample.Err == nil {
		t.Error("error sample must keep the cause")
	}
}

func TestSampleOpenMarket(t *testing.T) {
	ny := nyLoc(t)
	newsTime := time.Date(2024, 5, 1, 11, 0, 0, 0, ny)
	bars := &fakeBars{bars: []models.Bar{
		{Time: newsTime.Add(-10 * time.Minute), Close: 100},
		{Time: newsTime.Add(-1 * time.Minute), Close: 102},
		{Time: newsTime.Add(5 * time.Minute), Close: 104},
		{Time: newsTime.Add(10 * time.Minute), Close: 106},
	}}
	// "now" is past the full forward window.
	now := func() time.Time { return newsTime.Add(time.Hour) }
	s := NewTrendSampler(bars, testLogger(t), nil, now)

	sample := s.Sample(context.Background(), "AAPL", newsTime)
	if sample.Status != models.MarketOpen {
		t.Fatalf("status = %v, want Open", sample.Status)
	}
	tr := sample.Trend
	if tr.Price10MinBefore != 100 {
		t.Errorf("before = %v, want first bar 100", tr.Price10MinBefore)
	}
	if tr.PriceAtNews != 102 {
		t.Errorf("at news = %v, want as-of 102", tr.PriceAtNews)
	}
	if tr.PriceAfter != 106 {
		t.Errorf("after = %v, want last bar 106", tr.PriceAfter)
	}
	if math.Abs(tr.TrendBeforePct-2.0) > 1e-9 {
		t.Errorf("trend before = %v, want 2.0", tr.TrendBeforePct)
	}
	wantAfter := (106.0 - 102.0) / 102.0 * 100
	if math.Abs(tr.TrendAfterPct-wantAfter) > 1e-9 {
		t.Errorf("trend after = %v, want %v", tr.TrendAfterPct, wantAfter)
	}
	if tr.MinutesAfter != 10 {
		t.Errorf("minutes after = %v, want 10", tr.MinutesAfter)
	}
	if !bars.gotFrom.Equal(newsTime.Add(-10 * time.Minute)) {
		t.Errorf("window start = %v", bars.gotFrom)
	}
	if !bars.gotTo.Equal(newsTime.Add(10 * time.Minute)) {
		t.Errorf("window end = %v", bars.gotTo)
	}
}

func TestSampleForwardWindowClampedToNow(t *testing.T) {
	ny := nyLoc(t)
	newsTime := time.Date(2024, 5, 1, 11, 0, 0, 0, ny)
	bars := &fakeBars{bars: []models.Bar{
		{Time: newsTime.Add(-2 * time.Minute), Close: 100},
		{Time: newsTime.Add(3 * time.Minute), Close: 101},
	}}
	now := func() time.Time { return newsTime.Add(4 * time.Minute) }
	s := NewTrendSampler(bars, testLogger(t), nil, now)

	sample := s.Sample(context.Background(), "AAPL", newsTime)
	if sample.Status != models.MarketOpen {
		t.Fatalf("status = %v, want Open", sample.Status)
	}
	if got := sample.Trend.MinutesAfter; got != 4 {
		t.Errorf("minutes after = %v, want 4", got)
	}
	if !bars.gotTo.Equal(newsTime.Add(4 * time.Minute)) {
		t.Errorf("window end = %v, want clamped to now", bars.gotTo)
	}
}
