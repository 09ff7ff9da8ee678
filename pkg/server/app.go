package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "NewsPulse/internal/domain/repository"
	"NewsPulse/internal/export"
	"NewsPulse/internal/usecase"
	pkgch "NewsPulse/pkg/clickhouse"
	"NewsPulse/pkg/config"
	xhttp "NewsPulse/pkg/http"
	applogger "NewsPulse/pkg/logger"
)

// Stage names accepted by Run.
const (
	StageScreener = "screener"
	StageNews     = "news"
	StageAll      = "all"
)

// App encapsulates the application lifecycle: the screener and news stages
// plus the records API server.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	loc       *time.Location
	builder   *usecase.UniverseBuilder
	runner    *usecase.Runner
	store     drepo.RecordStore
	publisher drepo.Publisher
	quotes    drepo.QuoteStream
	chClient  *pkgch.Client

	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
}

// New creates the application. store, quotes, and chClient may be nil when
// the configuration does not enable them.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	loc *time.Location,
	builder *usecase.UniverseBuilder,
	runner *usecase.Runner,
	store drepo.RecordStore,
	publisher drepo.Publisher,
	quotes drepo.QuoteStream,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		loc:       loc,
		builder:   builder,
		runner:    runner,
		store:     store,
		publisher: publisher,
		quotes:    quotes,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject the records API handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run executes the requested stage. When the records store is available the
// API server is started afterwards and Run blocks until interrupted;
// otherwise it returns when the stage finishes.
func (a *App) Run(stage string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch stage {
	case StageScreener, StageNews, StageAll:
	default:
		return fmt.Errorf("unknown stage %q (want screener, news, or all)", stage)
	}

	if stage == StageScreener || stage == StageAll {
		if err := a.runScreener(ctx); err != nil {
			return err
		}
	}
	if stage == StageNews || stage == StageAll {
		if err := a.runNews(ctx); err != nil {
			return err
		}
	}

	if a.store == nil || a.httpHandler == nil {
		return a.shutdown(ctx)
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("records api started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// runScreener builds the ticker universe and writes the universe file.
func (a *App) runScreener(ctx context.Context) error {
	if a.quotes != nil {
		if err := a.quotes.Connect(ctx); err != nil {
			a.log.Warn("quote stream unavailable, using bar fallback", applogger.Error(err))
		}
	}

	rows, err := a.builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("screener stage: %w", err)
	}
	if err := export.WriteUniverse(a.cfg.Output.UniverseFile, rows, a.loc); err != nil {
		return fmt.Errorf("screener stage: %w", err)
	}
	a.log.Info("universe file written",
		applogger.String("file", a.cfg.Output.UniverseFile),
		applogger.Int("rows", len(rows)))
	return nil
}

// runNews processes the universe tickers through the sentiment pipeline and
// writes the enriched-records file.
func (a *App) runNews(ctx context.Context) error {
	tickers, err := export.ReadUniverseTickers(a.cfg.Output.UniverseFile)
	if err != nil {
		return fmt.Errorf("news stage: %w", err)
	}
	if len(tickers) == 0 {
		a.log.Info("universe file has no tickers, nothing to do")
		return nil
	}

	records, err := a.runner.Run(ctx, tickers, time.Now().In(a.loc))
	if err != nil {
		return fmt.Errorf("news stage: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	if err := export.WriteRecords(a.cfg.Output.RecordsFile, records, a.loc); err != nil {
		return fmt.Errorf("news stage: %w", err)
	}
	a.log.Info("records file written",
		applogger.String("file", a.cfg.Output.RecordsFile),
		applogger.Int("records", len(records)))
	return nil
}

// shutdown closes infrastructure clients.
func (a *App) shutdown(ctx context.Context) error {
	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
		}
	}
	if a.quotes != nil {
		if err := a.quotes.Close(); err != nil {
			a.log.Warn("quote stream close error", applogger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	a.log.RemoveCollector()
	a.log.Info("shutdown complete")
	return nil
}
