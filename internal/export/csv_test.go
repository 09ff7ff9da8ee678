package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"NewsPulse/internal/domain/models"
)

func f(v float64) *float64 { return &v }

func TestWriteRecordsQuotesEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	rec := &models.EnrichedRecord{
		Ticker:      "AAA,BBB",
		PublishTime: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
		Title:       `Apple, "beats" estimates`,
		Link:        "https://x/1?a=1,b=2",
		TitleScores: models.SentimentSet{NLTK: f(0.2), FinVADER: f(-0.4), FinBERT: f(0.6)},
		BodyScores:  models.SentimentSet{NLTK: f(0.1), FinVADER: f(0.1), FinBERT: f(0.1)},
		MarketStatus: models.MarketClosed,
		AggregateTitle: f(0.4 / 3),
		AggregateBody:  f(0.1),
	}
	if err := WriteRecords(path, []*models.EnrichedRecord{rec}, time.UTC); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	// Every field quoted, including empty ones.
	if !strings.HasPrefix(lines[1], `"AAA,BBB","2024-05-01 11:00:00",`) {
		t.Errorf("row start = %q", lines[1])
	}
	if !strings.Contains(lines[1], `"",""`) {
		t.Errorf("nil price fields should render as quoted empties: %q", lines[1])
	}

	// And the result must still parse as CSV with the right shape.
	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(rows[0]) != len(RecordHeader) {
		t.Fatalf("header width = %d, want %d", len(rows[0]), len(RecordHeader))
	}
	if len(rows[1]) != len(RecordHeader) {
		t.Fatalf("row width = %d, want %d", len(rows[1]), len(RecordHeader))
	}
	if rows[1][2] != `Apple, "beats" estimates` {
		t.Errorf("title round-trip = %q", rows[1][2])
	}
	if rows[1][16] != "Closed" {
		t.Errorf("market_status column = %q, want Closed", rows[1][16])
	}
}

func TestUniverseRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.csv")
	rows := []models.UniverseRow{
		{Ticker: "AAPL", Date: time.Date(2024, 5, 1, 9, 45, 0, 0, time.UTC), Title: "t1", ScreenerPrice: f(180), CurrentPrice: f(182), TrendDollar: f(2)},
		{Ticker: "NVDA", Date: time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC), Title: "t2"},
		{Ticker: "AAPL", Date: time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC), Title: "t3"},
	}
	if err := WriteUniverse(path, rows, time.UTC); err != nil {
		t.Fatalf("WriteUniverse: %v", err)
	}

	tickers, err := ReadUniverseTickers(path)
	if err != nil {
		t.Fatalf("ReadUniverseTickers: %v", err)
	}
	if len(tickers) != 2 || tickers[0] != "AAPL" || tickers[1] != "NVDA" {
		t.Fatalf("tickers = %v, want unique [AAPL NVDA] in first-seen order", tickers)
	}
}

func TestReadUniverseTickersMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("\"Symbol\",\"Date\"\n\"AAPL\",\"2024-05-01\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadUniverseTickers(path); err == nil {
		t.Fatal("expected error for missing TICKER column")
	}
}
