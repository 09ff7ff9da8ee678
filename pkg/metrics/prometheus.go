package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	itemsCollected   *prometheus.CounterVec
	recordsDelivered *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	lastPrice        *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		itemsCollected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newspulse_items_collected_total",
				Help: "Total news items collected per ticker",
			},
			[]string{"ticker"},
		),
		recordsDelivered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newspulse_records_delivered_total",
				Help: "Total enriched records delivered to a backend",
			},
			[]string{"backend"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newspulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "newspulse_last_price",
				Help: "Last observed price for a ticker",
			},
			[]string{"ticker"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "newspulse_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordItemCollected counts one collected news item for a ticker.
func (r *Recorder) RecordItemCollected(ticker string) {
	r.itemsCollected.WithLabelValues(ticker).Inc()
}

// RecordRecordDelivered counts one enriched record delivered to a backend.
func (r *Recorder) RecordRecordDelivered(backend string) {
	r.recordsDelivered.WithLabelValues(backend).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a ticker.
func (r *Recorder) RecordLastPrice(ticker string, price float64) {
	r.lastPrice.WithLabelValues(ticker).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
