package repository

import (
	"context"
	"time"

	"NewsPulse/internal/domain/models"
)

// NewsFeed fetches raw per-ticker feed entries.
type NewsFeed interface {
	Fetch(ctx context.Context, ticker string) ([]FeedEntry, error)
}

// FeedEntry is one parsed feed entry before scoring.
type FeedEntry struct {
	Title     string
	Link      string
	Published time.Time
}

// ArticleFetcher retrieves the main textual content of a linked page.
type ArticleFetcher interface {
	BodyText(ctx context.Context, url string) (string, error)
}

// BarSource retrieves minute-resolution price bars for a window.
type BarSource interface {
	MinuteBars(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error)
}

// QuoteStream maintains a live last-price tape for a set of tickers.
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context, tickers []string) error
	LastPrice(ticker string) (float64, bool)
	Close() error
	IsConnected() bool
}

// Publisher delivers enriched records to a message backend.
type Publisher interface {
	Publish(ctx context.Context, r *models.EnrichedRecord) error
	PublishBatch(ctx context.Context, rs []*models.EnrichedRecord) error
	Close() error
}

// RecordStore persists and queries enriched records.
type RecordStore interface {
	Store(ctx context.Context, r *models.EnrichedRecord) error
	StoreBatch(ctx context.Context, rs []*models.EnrichedRecord) error
	Query(ctx context.Context, ticker string, from, to time.Time, limit int) ([]*models.EnrichedRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordItemCollected(ticker string)
	RecordRecordDelivered(backend string)
	RecordError(kind string)
	RecordLastPrice(ticker string, price float64)
	RecordLatency(op string, seconds float64)
}
