package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"NewsPulse/internal/domain/models"
	xlogger "NewsPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fakeStore struct {
	records []*models.EnrichedRecord

	gotTicker string
	gotLimit  int
}

func (f *fakeStore) Store(context.Context, *models.EnrichedRecord) error        { return nil }
func (f *fakeStore) StoreBatch(context.Context, []*models.EnrichedRecord) error { return nil }
func (f *fakeStore) Health(context.Context) error                               { return nil }
func (f *fakeStore) Close() error                                               { return nil }

func (f *fakeStore) Query(_ context.Context, ticker string, _, _ time.Time, limit int) ([]*models.EnrichedRecord, error) {
	f.gotTicker = ticker
	f.gotLimit = limit
	return f.records, nil
}

func fv(v float64) *float64 { return &v }

func newHandler(t *testing.T, store *fakeStore) *RecordsHandler {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewRecordsHandler(log, store, time.UTC, xlogger.NewErrorTail(10))
}

func doRequest(t *testing.T, h func(echo.Context) error, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestRecordsFiltersByMinAggregate(t *testing.T) {
	store := &fakeStore{records: []*models.EnrichedRecord{
		{Ticker: "AAA", Title: "up", AggregateTitle: fv(0.5)},
		{Ticker: "BBB", Title: "down", AggregateTitle: fv(-0.5)},
	}}
	h := newHandler(t, store)

	rec := doRequest(t, h.Records, "/api/records?ticker=AAA&min_aggregate=0.2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if store.gotTicker != "AAA" {
		t.Errorf("query ticker = %q, want AAA", store.gotTicker)
	}
	if store.gotLimit != 100 {
		t.Errorf("default limit = %d, want 100", store.gotLimit)
	}

	var resp struct {
		Data []recordView `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Title != "up" {
		t.Fatalf("filtered rows = %+v, want only the positive story", resp.Data)
	}
}

func TestRecordsRejectsBadLimit(t *testing.T) {
	h := newHandler(t, &fakeStore{})
	rec := doRequest(t, h.Records, "/api/records?limit=999999")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestErrorsServesAggregatedTail(t *testing.T) {
	tail := xlogger.NewErrorTail(10)
	if err := tail.PublishMessage(context.Background(), "errors", []xlogger.AggregatedLogEntry{
		{Level: "warn", Message: "page fetch failed", Count: 3},
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewRecordsHandler(log, &fakeStore{}, time.UTC, tail)

	rec := doRequest(t, h.Errors, "/api/errors")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data []xlogger.AggregatedLogEntry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Count != 3 {
		t.Fatalf("tail = %+v, want one entry counted 3 times", resp.Data)
	}
}

func TestLatestUsesQueryLimit(t *testing.T) {
	store := &fakeStore{records: []*models.EnrichedRecord{{Ticker: "AAA", Title: "x"}}}
	h := newHandler(t, store)

	rec := doRequest(t, h.Latest, "/api/records/latest?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if store.gotLimit != 5 {
		t.Errorf("limit = %d, want 5", store.gotLimit)
	}
	if store.gotTicker != "" {
		t.Errorf("latest must not filter by ticker, got %q", store.gotTicker)
	}
	if !strings.Contains(rec.Body.String(), `"market_status"`) {
		t.Errorf("response missing record fields: %s", rec.Body.String())
	}
}
