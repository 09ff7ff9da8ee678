package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"NewsPulse/internal/domain/models"
	"NewsPulse/internal/domain/repository"
	pkgkafka "NewsPulse/pkg/kafka"
	"NewsPulse/pkg/util"
)

// ClickHouseRecordStore implements RecordStore on ClickHouse.
type ClickHouseRecordStore struct {
	db    *sql.DB
	table string
	loc   *time.Location
}

// NewClickHouseRecordStore creates a ClickHouse record store.
func NewClickHouseRecordStore(db *sql.DB, table string, loc *time.Location) repository.RecordStore {
	return &ClickHouseRecordStore{db: db, table: table, loc: loc}
}

// Schema returns the DDL for the records table, suitable for InitSchema.
func Schema(table string) []string {
	return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    ticker String,
    publish_time DateTime,
    title String,
    link String,
    nltk_title_sentiment Nullable(Float64),
    finvader_title_sentiment Nullable(Float64),
    finbert_title_sentiment Nullable(Float64),
    nltk_body_sentiment Nullable(Float64),
    finvader_body_sentiment Nullable(Float64),
    finbert_body_sentiment Nullable(Float64),
    price_10_min_before Nullable(Float64),
    price_at_news Nullable(Float64),
    price_after Nullable(Float64),
    trend_before Nullable(Float64),
    trend_after Nullable(Float64),
    minutes_after Nullable(Float64),
    market_status LowCardinality(String),
    price_sentiment Nullable(Float64),
    aggregate_title_sentiment Nullable(Float64),
    aggregate_body_sentiment Nullable(Float64),
    aggregate_price_sentiment Nullable(Float64)
) ENGINE = ReplacingMergeTree
ORDER BY (title, link, publish_time)`, table)}
}

const recordColumns = "ticker, publish_time, title, link, " +
	"nltk_title_sentiment, finvader_title_sentiment, finbert_title_sentiment, " +
	"nltk_body_sentiment, finvader_body_sentiment, finbert_body_sentiment, " +
	"price_10_min_before, price_at_news, price_after, trend_before, trend_after, " +
	"minutes_after, market_status, price_sentiment, " +
	"aggregate_title_sentiment, aggregate_body_sentiment, aggregate_price_sentiment"

func recordArgs(r *models.EnrichedRecord) []interface{} {
	return []interface{}{
		r.Ticker,
		r.PublishTime,
		r.Title,
		r.Link,
		r.TitleScores.NLTK, r.TitleScores.FinVADER, r.TitleScores.FinBERT,
		r.BodyScores.NLTK, r.BodyScores.FinVADER, r.BodyScores.FinBERT,
		r.Price10MinBefore, r.PriceAtNews, r.PriceAfter,
		r.TrendBeforePct, r.TrendAfterPct,
		r.MinutesAfter,
		string(r.MarketStatus),
		r.PriceSentiment,
		r.AggregateTitle, r.AggregateBody, r.AggregatePrice,
	}
}

func (s *ClickHouseRecordStore) Store(ctx context.Context, r *models.EnrichedRecord) error {
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table, recordColumns, placeholders(21))
	_, err := s.db.ExecContext(ctx, q, recordArgs(r)...)
	return err
}

func (s *ClickHouseRecordStore) StoreBatch(ctx context.Context, rs []*models.EnrichedRecord) error {
	if len(rs) == 0 {
		return nil
	}
	const chunkSize = 1000
	for start := 0; start < len(rs); start += chunkSize {
		end := start + chunkSize
		if end > len(rs) {
			end = len(rs)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*21)
		for _, r := range rs[start:end] {
			if r == nil || r.Title == "" && r.Link == "" {
				continue
			}
			values = append(values, "("+placeholders(21)+")")
			args = append(args, recordArgs(r)...)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", s.table, recordColumns, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseRecordStore) Query(ctx context.Context, ticker string, from, to time.Time, limit int) ([]*models.EnrichedRecord, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE has(splitByChar(',', ticker), ?) AND publish_time >= ? AND publish_time <= ? ORDER BY publish_time DESC LIMIT ?", recordColumns, s.table)
	args := []interface{}{ticker, from, to, limit}
	if ticker == "" {
		q = fmt.Sprintf("SELECT %s FROM %s WHERE publish_time >= ? AND publish_time <= ? ORDER BY publish_time DESC LIMIT ?", recordColumns, s.table)
		args = []interface{}{from, to, limit}
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.EnrichedRecord
	for rows.Next() {
		var r models.EnrichedRecord
		var status string
		if err := rows.Scan(
			&r.Ticker, &r.PublishTime, &r.Title, &r.Link,
			&r.TitleScores.NLTK, &r.TitleScores.FinVADER, &r.TitleScores.FinBERT,
			&r.BodyScores.NLTK, &r.BodyScores.FinVADER, &r.BodyScores.FinBERT,
			&r.Price10MinBefore, &r.PriceAtNews, &r.PriceAfter,
			&r.TrendBeforePct, &r.TrendAfterPct,
			&r.MinutesAfter, &status, &r.PriceSentiment,
			&r.AggregateTitle, &r.AggregateBody, &r.AggregatePrice,
		); err != nil {
			return nil, err
		}
		r.MarketStatus = models.MarketStatus(status)
		if s.loc != nil {
			r.PublishTime = r.PublishTime.In(s.loc)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *ClickHouseRecordStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseRecordStore) Close() error {
	return nil // connection owned by pkg/clickhouse client
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// KafkaRecordPublisher implements Publisher on the Kafka producer.
type KafkaRecordPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	loc      *time.Location
}

// NewKafkaRecordPublisher creates a Kafka publisher for enriched records.
func NewKafkaRecordPublisher(producer *pkgkafka.Producer, topic string, loc *time.Location) repository.Publisher {
	return &KafkaRecordPublisher{producer: producer, topic: topic, loc: loc}
}

func (p *KafkaRecordPublisher) payload(r *models.EnrichedRecord) map[string]interface{} {
	return map[string]interface{}{
		"ticker":                    r.Ticker,
		"publish_time":              util.FormatRecordTime(r.PublishTime, p.loc),
		"title":                     r.Title,
		"link":                      r.Link,
		"nltk_title_sentiment":      r.TitleScores.NLTK,
		"finvader_title_sentiment":  r.TitleScores.FinVADER,
		"finbert_title_sentiment":   r.TitleScores.FinBERT,
		"nltk_body_sentiment":       r.BodyScores.NLTK,
		"finvader_body_sentiment":   r.BodyScores.FinVADER,
		"finbert_body_sentiment":    r.BodyScores.FinBERT,
		"price_10_min_before":       r.Price10MinBefore,
		"price_at_news":             r.PriceAtNews,
		"price_after":               r.PriceAfter,
		"trend_before":              r.TrendBeforePct,
		"trend_after":               r.TrendAfterPct,
		"minutes_after":             r.MinutesAfter,
		"market_status":             string(r.MarketStatus),
		"price_sentiment":           r.PriceSentiment,
		"aggregate_title_sentiment": r.AggregateTitle,
		"aggregate_body_sentiment":  r.AggregateBody,
		"aggregate_price_sentiment": r.AggregatePrice,
	}
}

func (p *KafkaRecordPublisher) Publish(ctx context.Context, r *models.EnrichedRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(r.Link), p.payload(r))
}

func (p *KafkaRecordPublisher) PublishBatch(ctx context.Context, rs []*models.EnrichedRecord) error {
	if len(rs) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(rs))
	for i, r := range rs {
		msgs[i] = pkgkafka.Message{Key: []byte(r.Link), Value: p.payload(r)}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaRecordPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
