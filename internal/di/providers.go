package di

import (
	"context"
	"fmt"
	"time"

	"NewsPulse/internal/domain/repository"
	domsvc "NewsPulse/internal/domain/service"
	"NewsPulse/internal/handler/api"
	internalrepo "NewsPulse/internal/repository"
	"NewsPulse/internal/service/article"
	"NewsPulse/internal/service/feed"
	"NewsPulse/internal/service/marketdata"
	"NewsPulse/internal/service/ratelimit"
	"NewsPulse/internal/service/screener"
	"NewsPulse/internal/services/sentiment"
	"NewsPulse/internal/usecase"
	pkgcache "NewsPulse/pkg/cache"
	pkgch "NewsPulse/pkg/clickhouse"
	"NewsPulse/pkg/config"
	xhttp "NewsPulse/pkg/http"
	pkgkafka "NewsPulse/pkg/kafka"
	applogger "NewsPulse/pkg/logger"
	"NewsPulse/pkg/metrics"
	"NewsPulse/pkg/server"
)

// ProvideLocation loads the exchange timezone. A bad zone is a startup
// error, never a silent UTC fallback.
func ProvideLocation(cfg *config.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideErrorTail attaches the aggregating log collector to the logger and
// returns the in-memory tail it flushes into. Long runs collapse repeated
// per-item fetch failures into counted entries the API can serve.
func ProvideErrorTail(log *applogger.Logger) *applogger.ErrorTail {
	tail := applogger.NewErrorTail(200)
	log.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 50,
		Topic:          "errors",
		Publisher:      tail,
	})
	return tail
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the bar cache: layered over Redis when enabled,
// in-memory otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	memOpts := []pkgcache.MemoryOption{}
	if cfg.Cache.MemoryMaxSize > 0 {
		memOpts = append(memOpts, pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
	}
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(memOpts...), nil
	}

	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	layeredOpts := []pkgcache.LayeredOption{}
	if cfg.Cache.MemoryMaxSize > 0 {
		layeredOpts = append(layeredOpts, pkgcache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize))
	}
	return pkgcache.NewLayeredCache(rc, layeredOpts...), nil
}

// ProvideClickHouseClient creates the ClickHouse client and initializes the
// records schema. Returns nil when the clickhouse backend is not selected.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := append(
		[]string{fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database)},
		internalrepo.Schema(recordsTable(cfg))...,
	)
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

func recordsTable(cfg *config.Config) string {
	return cfg.ClickHouse.Database + "." + cfg.ClickHouse.Table
}

// ProvideRecordStore creates the ClickHouse record store, or nil without a
// client.
func ProvideRecordStore(chClient *pkgch.Client, cfg *config.Config, loc *time.Location) repository.RecordStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseRecordStore(chClient.DB(), recordsTable(cfg), loc)
}

// ProvideKafkaProducer creates a Kafka producer when the kafka backend is
// selected.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the Kafka record publisher, or nil without a
// producer.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config, loc *time.Location) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaRecordPublisher(producer, cfg.Kafka.Topic, loc)
}

// ProvideNewsFeed creates the RSS feed client.
func ProvideNewsFeed(cfg *config.Config, loc *time.Location) repository.NewsFeed {
	return feed.New(cfg.Feed.BaseURL, cfg.Feed.Region, cfg.Feed.Lang, cfg.Feed.Timeout, loc)
}

// ProvideArticleFetcher creates the page body extractor.
func ProvideArticleFetcher(cfg *config.Config) repository.ArticleFetcher {
	return article.New(cfg.Article.Timeout, cfg.Article.UserAgent)
}

// ProvideScorer assembles the three-analyzer sentiment facade.
func ProvideScorer(cfg *config.Config, log *applogger.Logger) domsvc.Scorer {
	finbert := sentiment.NewFinBERTAnalyzer(
		cfg.FinBERT.URL,
		xhttp.NewClient(xhttp.WithTimeout(cfg.FinBERT.Timeout)),
		sentiment.WithMaxTokens(cfg.FinBERT.MaxTokens),
	)
	return sentiment.NewDefaultScorer(log, finbert)
}

// ProvideBarSource creates the cached minute-bar client.
func ProvideBarSource(cfg *config.Config, cacheSvc pkgcache.Service) repository.BarSource {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.MarketData.Timeout))
	return marketdata.NewBarClient(cfg.MarketData.BaseURL, cfg.MarketData.APIKey, client, cacheSvc, cfg.MarketData.BarCacheTTL)
}

// ProvideQuoteStream creates the WebSocket quote stream, or nil when no
// stream endpoint is configured.
func ProvideQuoteStream(cfg *config.Config, log *applogger.Logger, m repository.Metrics) repository.QuoteStream {
	if cfg.MarketData.WebSocketURL == "" {
		return nil
	}
	return marketdata.NewStream(
		cfg.MarketData.APIKey,
		cfg.MarketData.WebSocketURL,
		cfg.MarketData.ReconnectDelay,
		cfg.MarketData.PingInterval,
		log, m,
	)
}

// ProvideScreenerClient creates the CSV export client.
func ProvideScreenerClient(cfg *config.Config, log *applogger.Logger, loc *time.Location) *screener.Client {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Screener.Timeout))
	return screener.New(
		cfg.Screener.NewsURL,
		cfg.Screener.ScreenerURL,
		cfg.Screener.Filters,
		cfg.Screener.APIToken,
		cfg.Screener.DataDir,
		client, log, loc,
	)
}

// ProvideUniverseBuilder creates the screener-stage use case.
func ProvideUniverseBuilder(sc *screener.Client, quotes repository.QuoteStream, bars repository.BarSource, log *applogger.Logger, m repository.Metrics) *usecase.UniverseBuilder {
	return usecase.NewUniverseBuilder(sc, quotes, bars, log, m, nil)
}

// ProvideCollector creates the per-ticker news collector.
func ProvideCollector(nf repository.NewsFeed, af repository.ArticleFetcher, scorer domsvc.Scorer, loc *time.Location, log *applogger.Logger, m repository.Metrics) *usecase.Collector {
	return usecase.NewCollector(nf, af, scorer, loc, log, m)
}

// ProvideTrendSampler creates the price-trend sampler.
func ProvideTrendSampler(bars repository.BarSource, log *applogger.Logger, m repository.Metrics) *usecase.TrendSampler {
	return usecase.NewTrendSampler(bars, log, m, nil)
}

// ProvideLimiter creates the token-bucket limiter used to pace feed fetches.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideRunner creates the news-stage pipeline runner.
func ProvideRunner(
	collector *usecase.Collector,
	sampler *usecase.TrendSampler,
	limiter *ratelimit.Limiter,
	store repository.RecordStore,
	publisher repository.Publisher,
	log *applogger.Logger,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.Runner {
	return usecase.NewRunner(collector, sampler, limiter, store, publisher, log, m, cfg.Feed.TickerPause, cfg.Backend.Type)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	loc *time.Location,
	builder *usecase.UniverseBuilder,
	runner *usecase.Runner,
	store repository.RecordStore,
	publisher repository.Publisher,
	quotes repository.QuoteStream,
	chClient *pkgch.Client,
	tail *applogger.ErrorTail,
) *server.App {
	app := server.New(cfg, log, loc, builder, runner, store, publisher, quotes, chClient)
	if store != nil {
		app.SetHTTPHandler(api.NewRecordsHandler(log, store, loc, tail))
	}
	return app
}
