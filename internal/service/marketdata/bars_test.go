package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xcache "NewsPulse/pkg/cache"
	xhttp "NewsPulse/pkg/http"
)

func TestBarClientMinuteBars(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", got)
		}
		if got := r.URL.Query().Get("interval"); got != "1m" {
			t.Errorf("interval = %q, want 1m", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("api key = %q, want secret", got)
		}
		// Out of order on purpose, client must sort ascending.
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"bars": []map[string]interface{}{
				{"t": 1700000120, "c": 101.5},
				{"t": 1700000060, "c": 100.0},
			},
		})
	}))
	defer srv.Close()

	cache := xcache.NewMemoryCache()
	client := NewBarClient(srv.URL, "secret", xhttp.NewClient(), cache, time.Minute)

	from := time.Unix(1700000000, 0)
	to := time.Unix(1700000600, 0)

	bars, err := client.MinuteBars(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("MinuteBars: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if !bars[0].Time.Before(bars[1].Time) {
		t.Errorf("bars not sorted ascending: %v, %v", bars[0].Time, bars[1].Time)
	}
	if bars[0].Close != 100.0 || bars[1].Close != 101.5 {
		t.Errorf("closes = %v, %v", bars[0].Close, bars[1].Close)
	}

	// Second call for the same window must come from cache.
	again, err := client.MinuteBars(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("cached MinuteBars: %v", err)
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1", calls)
	}
	if len(again) != 2 || again[1].Close != 101.5 {
		t.Errorf("cached bars mismatch: %+v", again)
	}
}

func TestBarClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewBarClient(srv.URL, "k", xhttp.NewClient(), nil, 0)
	if _, err := client.MinuteBars(context.Background(), "MSFT", time.Now().Add(-time.Hour), time.Now()); err == nil {
		t.Fatal("expected error on 502 response")
	}
}
