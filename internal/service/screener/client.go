package screener

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"NewsPulse/internal/domain/models"
	xhttp "NewsPulse/pkg/http"
	"NewsPulse/pkg/logger"
)

// NewsRow is one row of the news export. Tickers is the raw comma-joined
// list as exported; the universe builder explodes it.
type NewsRow struct {
	Tickers string
	Date    time.Time
	Title   string
}

// Client downloads the news and screener CSV exports. Every successful
// download is persisted under dataDir so a later fetch failure can fall back
// to the last saved copy.
type Client struct {
	newsURL     string
	screenerURL string
	filters     string
	apiToken    string
	dataDir     string
	client      *xhttp.Client
	log         *logger.Logger
	loc         *time.Location
}

// New creates a screener export client.
func New(newsURL, screenerURL, filters, apiToken, dataDir string, client *xhttp.Client, log *logger.Logger, loc *time.Location) *Client {
	return &Client{
		newsURL:     newsURL,
		screenerURL: screenerURL,
		filters:     filters,
		apiToken:    apiToken,
		dataDir:     dataDir,
		client:      client,
		log:         log,
		loc:         loc,
	}
}

const (
	newsFileName     = "news_export.csv"
	screenerFileName = "screener_export.csv"
)

// NewsExport fetches the news export, falling back to the saved copy when
// the fetch fails.
func (c *Client) NewsExport(ctx context.Context) ([]NewsRow, error) {
	raw, err := c.fetchAndSave(ctx, fmt.Sprintf("%s?v=3&auth=%s", c.newsURL, c.apiToken), newsFileName)
	if err != nil {
		c.log.Warn("news export fetch failed, loading saved file", logger.Error(err))
		raw, err = os.ReadFile(filepath.Join(c.dataDir, newsFileName))
		if err != nil {
			return nil, fmt.Errorf("news export unavailable: %w", err)
		}
	}
	return c.parseNews(raw)
}

// ScreenerExport fetches the screener export with the configured filters,
// falling back to the saved copy when the fetch fails.
func (c *Client) ScreenerExport(ctx context.Context) ([]models.ScreenerRecord, error) {
	raw, err := c.fetchAndSave(ctx, fmt.Sprintf("%s?%s&auth=%s", c.screenerURL, c.filters, c.apiToken), screenerFileName)
	if err != nil {
		c.log.Warn("screener export fetch failed, loading saved file", logger.Error(err))
		raw, err = os.ReadFile(filepath.Join(c.dataDir, screenerFileName))
		if err != nil {
			return nil, fmt.Errorf("screener export unavailable: %w", err)
		}
	}
	return c.parseScreener(raw)
}

func (c *Client) fetchAndSave(ctx context.Context, url, fileName string) ([]byte, error) {
	var body []byte
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    url,
	}, &body)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(c.dataDir, fileName)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return nil, fmt.Errorf("save %s: %w", path, err)
	}
	c.log.Info("export saved", logger.String("file", path))
	return body, nil
}

func (c *Client) parseNews(raw []byte) ([]NewsRow, error) {
	header, records, err := readCSV(raw)
	if err != nil {
		return nil, fmt.Errorf("parse news export: %w", err)
	}
	ticker, ok := header["ticker"]
	if !ok {
		return nil, fmt.Errorf("news export missing Ticker column, got %v", headerNames(header))
	}
	dateCol, ok := header["date"]
	if !ok {
		return nil, fmt.Errorf("news export missing Date column, got %v", headerNames(header))
	}
	titleCol, ok := header["title"]
	if !ok {
		return nil, fmt.Errorf("news export missing Title column, got %v", headerNames(header))
	}

	rows := make([]NewsRow, 0, len(records))
	for _, rec := range records {
		if ticker >= len(rec) || dateCol >= len(rec) || titleCol >= len(rec) {
			continue
		}
		t, ok := parseExportTime(rec[dateCol], c.loc)
		if !ok {
			continue
		}
		rows = append(rows, NewsRow{
			Tickers: strings.TrimSpace(rec[ticker]),
			Date:    t,
			Title:   strings.TrimSpace(rec[titleCol]),
		})
	}
	return rows, nil
}

func (c *Client) parseScreener(raw []byte) ([]models.ScreenerRecord, error) {
	header, records, err := readCSV(raw)
	if err != nil {
		return nil, fmt.Errorf("parse screener export: %w", err)
	}
	ticker, ok := header["ticker"]
	if !ok {
		return nil, fmt.Errorf("screener export missing Ticker column, got %v", headerNames(header))
	}
	relVol := -1
	if i, ok := header["relative volume"]; ok {
		relVol = i
	}
	price := -1
	if i, ok := header["price"]; ok {
		price = i
	}

	rows := make([]models.ScreenerRecord, 0, len(records))
	for _, rec := range records {
		if ticker >= len(rec) {
			continue
		}
		r := models.ScreenerRecord{Ticker: strings.TrimSpace(rec[ticker])}
		if r.Ticker == "" {
			continue
		}
		if relVol >= 0 && relVol < len(rec) {
			r.RelativeVolume = parseFloatPtr(rec[relVol])
		}
		if price >= 0 && price < len(rec) {
			r.Price = parseFloatPtr(rec[price])
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// readCSV returns a lower-cased header index and the data records.
func readCSV(raw []byte) (map[string]int, [][]string, error) {
	r := csv.NewReader(strings.NewReader(string(raw)))
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty csv")
	}
	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header, all[1:], nil
}

func headerNames(header map[string]int) []string {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	return names
}

func parseFloatPtr(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

var exportTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"2006-01-02",
}

func parseExportTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range exportTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
