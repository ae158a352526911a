package modes

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roamhub/booking-ref-system/config"
	"github.com/roamhub/booking-ref-system/internal/adapter/http/server"
	"github.com/roamhub/booking-ref-system/internal/adapter/http/ws"
	"github.com/roamhub/booking-ref-system/internal/adapter/memory"
	repo "github.com/roamhub/booking-ref-system/internal/adapter/postgres"
	brokeradapter "github.com/roamhub/booking-ref-system/internal/adapter/rabbit"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/internal/service/allocator"
	"github.com/roamhub/booking-ref-system/internal/service/stats"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	"github.com/roamhub/booking-ref-system/pkg/postgres"
	"github.com/roamhub/booking-ref-system/pkg/rabbit"
	"github.com/roamhub/booking-ref-system/pkg/trm"
	"github.com/roamhub/booking-ref-system/pkg/wshub"
)

// AllocatorApp is the long-running HTTP mode: allocation endpoint, stats,
// live feed and the background ledger writer.
type AllocatorApp struct {
	httpServer *server.API
	writer     *allocator.LedgerWriter
	feed       *ws.Feed

	postgresDB *postgres.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ

	cfg config.Config
	log logger.Logger
}

func NewAllocator(ctx context.Context, cfg config.Config, log logger.Logger) (*AllocatorApp, error) {
	app := &AllocatorApp{
		cfg: cfg,
		log: log,
	}

	// Sequence store and ledger share one driver so a single config knob
	// moves the whole persistence layer.
	var (
		store  allocator.SequenceStore
		ledger allocator.Ledger
	)
	switch cfg.Allocator.StoreDriver {
	case "postgres":
		postgresDB, err := postgres.New(ctx, cfg.Database)
		if err != nil {
			log.Error(ctx, "Failed to setup database", err)
			return nil, err
		}
		app.postgresDB = postgresDB

		txManager := trm.New(postgresDB.Pool)
		store = repo.NewSequenceStore(postgresDB.Pool, txManager)
		ledger = repo.NewLedger(postgresDB.Pool, txManager)
	default:
		store = memory.NewSequenceStore()
		ledger = memory.NewLedger()
	}

	// Fan-out targets for committed records.
	var publishers []allocator.Publisher

	app.feed = ws.NewFeed(wshub.NewHub(log), log)
	publishers = append(publishers, app.feed)

	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			log.Error(ctx, "Failed to setup rabbitmq", err)
			return nil, err
		}
		app.rabbitMQ = rabbitMQ
		publishers = append(publishers, brokeradapter.NewBookingBroker(rabbitMQ, log))
	}

	app.writer = allocator.NewLedgerWriter(
		ledger,
		log,
		cfg.Allocator.LedgerBuffer,
		cfg.Allocator.LedgerRetries,
		cfg.Allocator.LedgerRetryDelay,
		publishers...,
	)

	allocatorService := allocator.NewService(
		store,
		app.writer,
		types.NewServiceRegistry(cfg.Allocator.ServiceCodes),
		log,
		allocator.WithStoreTimeout(cfg.Allocator.StoreTimeout),
		allocator.WithStoreDriver(cfg.Allocator.StoreDriver),
	)
	statsService := stats.NewService(ledger, log)

	httpServer, err := server.New(cfg, allocatorService, statsService, app.feed, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		return nil, err
	}
	app.httpServer = httpServer

	return app, nil
}

func (s *AllocatorApp) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.writer.Start()
	s.httpServer.Run(ctx, errCh)
	defer func() {
		s.close(ctx)
		s.log.Info(ctx, "allocator service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "Allocator service has been started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (s *AllocatorApp) close(ctx context.Context) {
	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	// Drain pending ledger writes before tearing the backends down.
	if s.writer != nil {
		s.writer.Close()
	}

	if s.feed != nil {
		s.feed.Close()
	}

	if s.rabbitMQ != nil {
		if err := s.rabbitMQ.Close(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close rabbitmq", "error", err.Error())
		}
	}

	if s.postgresDB != nil && s.postgresDB.Pool != nil {
		s.postgresDB.Pool.Close()
	}
}
