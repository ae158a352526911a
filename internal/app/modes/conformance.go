package modes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/roamhub/booking-ref-system/config"
	"github.com/roamhub/booking-ref-system/internal/adapter/memory"
	repo "github.com/roamhub/booking-ref-system/internal/adapter/postgres"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/internal/service/allocator"
	"github.com/roamhub/booking-ref-system/internal/service/harness"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	"github.com/roamhub/booking-ref-system/pkg/postgres"
	"github.com/roamhub/booking-ref-system/pkg/trm"
)

// ConformanceApp runs the concurrency acceptance check against the configured
// store driver and exits. A duplicate reference fails the run.
type ConformanceApp struct {
	harness *harness.Harness
	writer  *allocator.LedgerWriter
	ledger  allocator.Ledger

	postgresDB *postgres.PostgreDB

	cfg config.Config
	log logger.Logger
}

func NewConformance(ctx context.Context, cfg config.Config, log logger.Logger) (*ConformanceApp, error) {
	app := &ConformanceApp{
		cfg: cfg,
		log: log,
	}

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
	app.ledger = ledger

	app.writer = allocator.NewLedgerWriter(
		ledger,
		log,
		cfg.Allocator.LedgerBuffer,
		cfg.Allocator.LedgerRetries,
		cfg.Allocator.LedgerRetryDelay,
	)

	allocatorService := allocator.NewService(
		store,
		app.writer,
		types.NewServiceRegistry(cfg.Allocator.ServiceCodes),
		log,
		allocator.WithStoreTimeout(cfg.Allocator.StoreTimeout),
		allocator.WithStoreDriver(cfg.Allocator.StoreDriver),
	)

	app.harness = harness.New(allocatorService, log)

	return app, nil
}

func (s *ConformanceApp) Start(ctx context.Context) error {
	defer s.close()

	s.writer.Start()

	service := types.ServiceCode(s.cfg.Conformance.Service)

	report, err := s.harness.RunConcurrencyTest(ctx, service, s.cfg.Conformance.Concurrency)
	if err != nil {
		return err
	}

	// Let every record reach the ledger before reporting.
	s.writer.Close()

	out, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))

	if !report.Passed() {
		return fmt.Errorf("conformance failed: %d duplicate reference(s) among %d allocations",
			len(report.Duplicates), report.Requested)
	}

	return nil
}

func (s *ConformanceApp) close() {
	if s.writer != nil {
		s.writer.Close()
	}
	if s.postgresDB != nil && s.postgresDB.Pool != nil {
		s.postgresDB.Pool.Close()
	}
}
