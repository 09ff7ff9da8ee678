package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsPulse/internal/domain/models"
	"NewsPulse/internal/service/screener"
	xhttp "NewsPulse/pkg/http"
)

type fakeQuotes struct {
	prices    map[string]float64
	connected bool

	subscribed []string
}

func (f *fakeQuotes) Connect(context.Context) error { f.connected = true; return nil }
func (f *fakeQuotes) Subscribe(_ context.Context, tickers []string) error {
	f.subscribed = tickers
	return nil
}
func (f *fakeQuotes) LastPrice(t string) (float64, bool) { p, ok := f.prices[t]; return p, ok }
func (f *fakeQuotes) Close() error                       { return nil }
func (f *fakeQuotes) IsConnected() bool                  { return f.connected }

type universeBars struct {
	closes map[string]float64
}

func (u *universeBars) MinuteBars(_ context.Context, ticker string, _, _ time.Time) ([]models.Bar, error) {
	c, ok := u.closes[ticker]
	if !ok {
		return nil, nil
	}
	return []models.Bar{{Time: time.Now(), Close: c}}, nil
}

func TestUniverseBuilderJoinsAndPrices(t *testing.T) {
	newsCSV := `"Title","Date","Ticker"
"Story one","2024-05-01 09:45:00","AAPL,MSFT"
"Story two","2024-05-01 10:30:00","NVDA"
"Story one","2024-05-01 08:00:00","AAPL"
`
	screenerCSV := `"Ticker","Relative Volume","Price"
"AAPL","1.5","180"
"NVDA","2.0","900"
`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") == "3" {
			_, _ = w.Write([]byte(newsCSV))
			return
		}
		_, _ = w.Write([]byte(screenerCSV))
	}))
	defer srv.Close()

	log := testLogger(t)
	sc := screener.New(srv.URL, srv.URL, "f=test", "tok", t.TempDir(), xhttp.NewClient(), log, time.UTC)
	quotes := &fakeQuotes{connected: true, prices: map[string]float64{"AAPL": 182, "NVDA": 910}}
	bars := &universeBars{closes: map[string]float64{"MSFT": 400}}

	b := NewUniverseBuilder(sc, quotes, bars, log, nil, nil)
	b.QuoteWarmup = time.Millisecond

	rows, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 4 exploded rows, one duplicate (AAPL, "Story one") dropped.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3: %+v", len(rows), rows)
	}
	if len(quotes.subscribed) != 3 {
		t.Errorf("subscribed = %v, want the 3 unique tickers", quotes.subscribed)
	}

	byTicker := map[string]models.UniverseRow{}
	for _, r := range rows {
		byTicker[r.Ticker] = r
	}

	aapl := byTicker["AAPL"]
	if aapl.Title != "Story one" || !aapl.Date.Equal(time.Date(2024, 5, 1, 9, 45, 0, 0, time.UTC)) {
		t.Errorf("AAPL row = %+v, want the newest duplicate kept", aapl)
	}
	if aapl.ScreenerPrice == nil || *aapl.ScreenerPrice != 180 {
		t.Errorf("AAPL screener price = %v", aapl.ScreenerPrice)
	}
	if aapl.CurrentPrice == nil || *aapl.CurrentPrice != 182 {
		t.Errorf("AAPL current price = %v", aapl.CurrentPrice)
	}
	if aapl.TrendDollar == nil || *aapl.TrendDollar != 2 {
		t.Errorf("AAPL trend $ = %v, want 2", aapl.TrendDollar)
	}

	// MSFT is not on the quote tape and not in the screener export.
	msft := byTicker["MSFT"]
	if msft.CurrentPrice == nil || *msft.CurrentPrice != 400 {
		t.Errorf("MSFT current price = %v, want bar fallback 400", msft.CurrentPrice)
	}
	if msft.ScreenerPrice != nil || msft.TrendDollar != nil {
		t.Errorf("MSFT without screener row must keep nil price fields: %+v", msft)
	}

	// Rows sorted newest first.
	if rows[0].Ticker != "NVDA" {
		t.Errorf("first row = %+v, want the 10:30 NVDA story", rows[0])
	}
}
