package usecase

import (
	"context"
	"sort"
	"time"

	"NewsPulse/internal/domain/models"
	drepo "NewsPulse/internal/domain/repository"
	"NewsPulse/internal/service/ratelimit"
	"NewsPulse/pkg/logger"
	"NewsPulse/pkg/util"
)

const feedLimiterKey = "feed_fetch"

// Runner drives the news pipeline: paced per-ticker collection, story
// deduplication, trend sampling, record building, then delivery to the
// configured backend. Tickers are processed sequentially; the upstream feed
// throttles aggressive clients.
type Runner struct {
	collector *Collector
	sampler   *TrendSampler
	limiter   *ratelimit.Limiter
	store     drepo.RecordStore
	publisher drepo.Publisher
	log       *logger.Logger
	metrics   drepo.Metrics
	pause     time.Duration
	backend   string
}

// NewRunner creates a pipeline runner. store and publisher may be nil; the
// backend label is used for delivery metrics.
func NewRunner(collector *Collector, sampler *TrendSampler, limiter *ratelimit.Limiter, store drepo.RecordStore, publisher drepo.Publisher, log *logger.Logger, metrics drepo.Metrics, pause time.Duration, backend string) *Runner {
	if pause <= 0 {
		pause = time.Second
	}
	return &Runner{
		collector: collector,
		sampler:   sampler,
		limiter:   limiter,
		store:     store,
		publisher: publisher,
		log:       log,
		metrics:   metrics,
		pause:     pause,
		backend:   backend,
	}
}

// Run processes the ticker list for asOfDay and returns the final records,
// sorted by publish time descending. A failing ticker is logged and skipped.
func (r *Runner) Run(ctx context.Context, tickers []string, asOfDay time.Time) ([]*models.EnrichedRecord, error) {
	started := time.Now()

	var items []*models.NewsItem
	for _, ticker := range tickers {
		if err := r.waitFeedSlot(ctx); err != nil {
			return nil, err
		}
		collected, err := r.collector.Collect(ctx, ticker, asOfDay)
		if err != nil {
			r.log.Warn("ticker skipped", logger.String("ticker", ticker), logger.Error(err))
			continue
		}
		items = append(items, collected...)
	}

	deduped := Deduplicate(items)
	r.log.Info("collection finished",
		logger.Int("tickers", len(tickers)),
		logger.Int("items", len(items)),
		logger.Int("stories", len(deduped)))

	if len(deduped) == 0 {
		r.log.Info("no news items collected")
		return nil, nil
	}

	records := make([]*models.EnrichedRecord, 0, len(deduped))
	for _, item := range deduped {
		sample := r.sampler.Sample(ctx, sampleTicker(item), item.PublishTime)
		records = append(records, BuildRecord(item, sample))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PublishTime.After(records[j].PublishTime)
	})

	if err := r.deliver(ctx, records); err != nil {
		return records, err
	}

	if r.metrics != nil {
		r.metrics.RecordLatency("pipeline_run", time.Since(started).Seconds())
	}
	return records, nil
}

// waitFeedSlot blocks until the feed token bucket allows the next fetch,
// spacing successive per-ticker fetches by at least the configured pause.
func (r *Runner) waitFeedSlot(ctx context.Context) error {
	for !r.limiter.Allow(feedLimiterKey, 1, 1/r.pause.Seconds()) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}

// sampleTicker picks the ticker used for price sampling. After dedup the
// field may hold several symbols; the first (alphabetically, per the merge)
// stands for the story.
func sampleTicker(item *models.NewsItem) string {
	parts := util.SplitTickers(item.Ticker)
	if len(parts) == 0 {
		return item.Ticker
	}
	return parts[0]
}

func (r *Runner) deliver(ctx context.Context, records []*models.EnrichedRecord) error {
	if r.publisher != nil {
		if err := r.publisher.PublishBatch(ctx, records); err != nil {
			if r.metrics != nil {
				r.metrics.RecordError("publish")
			}
			return err
		}
		if r.metrics != nil {
			r.metrics.RecordRecordDelivered(r.backend)
		}
	}
	if r.store != nil {
		if err := r.store.StoreBatch(ctx, records); err != nil {
			if r.metrics != nil {
				r.metrics.RecordError("store")
			}
			return err
		}
		if r.metrics != nil {
			r.metrics.RecordRecordDelivered(r.backend)
		}
	}
	return nil
}
