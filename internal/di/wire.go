//go:build wireinject
// +build wireinject

package di

import (
	"NewsPulse/pkg/config"
	"NewsPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLocation,
		ProvideLogger,
		ProvideErrorTail,
		ProvideMetrics,
		ProvideCache,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideRecordStore,
		ProvidePublisher,

		// Domain services
		ProvideNewsFeed,
		ProvideArticleFetcher,
		ProvideScorer,
		ProvideBarSource,
		ProvideQuoteStream,
		ProvideScreenerClient,

		// Use cases
		ProvideUniverseBuilder,
		ProvideCollector,
		ProvideTrendSampler,
		ProvideLimiter,
		ProvideRunner,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
