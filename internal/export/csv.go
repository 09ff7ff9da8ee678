// Package export writes the pipeline's CSV outputs and reads the ticker
// universe back. Titles and links routinely contain commas, so every field
// is quoted unconditionally; encoding/csv only quotes when forced to, which
// is why rows are assembled by hand here (parsing still uses encoding/csv).
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"NewsPulse/internal/domain/models"
	"NewsPulse/pkg/util"
)

// RecordHeader is the column order of the enriched-records file.
var RecordHeader = []string{
	"ticker", "publish_time", "title", "link",
	"nltk_title_sentiment", "finvader_title_sentiment", "finbert_title_sentiment",
	"nltk_body_sentiment", "finvader_body_sentiment", "finbert_body_sentiment",
	"price_10_min_before", "price_at_news", "price_after",
	"trend_before", "trend_after", "minutes_after", "market_status",
	"nltk_price_sentiment", "finvader_price_sentiment", "finbert_price_sentiment",
	"aggregate_title_sentiment", "aggregate_body_sentiment", "aggregate_price_sentiment",
}

// UniverseHeader is the column order of the ticker-universe file.
var UniverseHeader = []string{
	"TICKER", "Date", "News", "Relative Volume", "Screener Price", "Current Price", "Trend $",
}

// WriteRecords writes enriched records to path, all fields quoted. Times are
// formatted exchange-local.
func WriteRecords(path string, records []*models.EnrichedRecord, loc *time.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeQuotedRow(w, RecordHeader)
	for _, r := range records {
		writeQuotedRow(w, recordRow(r, loc))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func recordRow(r *models.EnrichedRecord, loc *time.Location) []string {
	row := []string{
		r.Ticker,
		util.FormatRecordTime(r.PublishTime, loc),
		r.Title,
		r.Link,
	}
	for _, c := range []models.Category{models.CategoryTitle, models.CategoryBody} {
		for _, s := range r.CategoryScores(c) {
			row = append(row, formatFloat(s))
		}
	}
	row = append(row,
		formatFloat(r.Price10MinBefore),
		formatFloat(r.PriceAtNews),
		formatFloat(r.PriceAfter),
		formatFloat(r.TrendBeforePct),
		formatFloat(r.TrendAfterPct),
		formatFloat(r.MinutesAfter),
		string(r.MarketStatus),
	)
	for _, s := range r.CategoryScores(models.CategoryPrice) {
		row = append(row, formatFloat(s))
	}
	row = append(row,
		formatFloat(r.AggregateTitle),
		formatFloat(r.AggregateBody),
		formatFloat(r.AggregatePrice),
	)
	return row
}

// WriteUniverse writes the ticker-universe rows produced by the screener
// stage.
func WriteUniverse(path string, rows []models.UniverseRow, loc *time.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeQuotedRow(w, UniverseHeader)
	for _, r := range rows {
		writeQuotedRow(w, []string{
			r.Ticker,
			util.FormatRecordTime(r.Date, loc),
			r.Title,
			formatFloat(r.RelativeVolume),
			formatFloat(r.ScreenerPrice),
			formatFloat(r.CurrentPrice),
			formatFloat(r.TrendDollar),
		})
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadUniverseTickers returns the distinct tickers of the universe file's
// TICKER column, in first-seen order. A missing column is an error, not an
// empty result.
func ReadUniverseTickers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open universe file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("universe file %s is empty", path)
	}

	col := -1
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), "TICKER") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("universe file %s has no TICKER column", path)
	}

	seen := make(map[string]struct{})
	var tickers []string
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		t := strings.TrimSpace(row[col])
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tickers = append(tickers, t)
	}
	return tickers, nil
}

func writeQuotedRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
