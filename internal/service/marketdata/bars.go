package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"NewsPulse/internal/domain/models"
	drepo "NewsPulse/internal/domain/repository"
	xcache "NewsPulse/pkg/cache"
	xhttp "NewsPulse/pkg/http"
)

// BarClient retrieves minute-resolution price bars over HTTP. Responses are
// cached so a burst of news items on the same ticker and minute window does
// not refetch the same bars.
type BarClient struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	cache   xcache.Service
	ttl     time.Duration
}

// NewBarClient creates a bar source. cache may be nil to disable caching.
func NewBarClient(baseURL, apiKey string, client *xhttp.Client, cache xcache.Service, ttl time.Duration) drepo.BarSource {
	return &BarClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		cache:   cache,
		ttl:     ttl,
	}
}

type barPayload struct {
	Time  int64   `json:"t"` // unix seconds
	Close float64 `json:"c"`
}

type barsResponse struct {
	Bars []barPayload `json:"bars"`
}

// MinuteBars fetches 1m bars for [from, to], sorted ascending by time.
func (c *BarClient) MinuteBars(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error) {
	key := xcache.GenerateKeyWithParams("bars", ticker, from.Unix(), to.Unix())

	if c.cache != nil {
		var raw string
		if err := c.cache.Get(ctx, key, &raw); err == nil {
			var cached []models.Bar
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	var br barsResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/bars",
		Headers: map[string]string{
			"X-API-Key": c.apiKey,
		},
		QueryParams: map[string][]string{
			"symbol":   {ticker},
			"interval": {"1m"},
			"from":     {strconv.FormatInt(from.Unix(), 10)},
			"to":       {strconv.FormatInt(to.Unix(), 10)},
		},
	}, &br)
	if err != nil {
		return nil, fmt.Errorf("minute bars %s: %w", ticker, err)
	}

	bars := make([]models.Bar, 0, len(br.Bars))
	for _, b := range br.Bars {
		bars = append(bars, models.Bar{Time: time.Unix(b.Time, 0), Close: b.Close})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	if c.cache != nil {
		if encoded, err := json.Marshal(bars); err == nil {
			_ = c.cache.Set(ctx, key, string(encoded), c.ttl)
		}
	}
	return bars, nil
}
