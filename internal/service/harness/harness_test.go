package harness_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roamhub/booking-ref-system/internal/adapter/memory"
	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/internal/service/allocator"
	"github.com/roamhub/booking-ref-system/internal/service/harness"
	"github.com/roamhub/booking-ref-system/pkg/logger"
)

var testLog = logger.InitLogger("harness-test", logger.LevelError)

func newAllocator(t *testing.T, store allocator.SequenceStore) *allocator.Service {
	t.Helper()

	writer := allocator.NewLedgerWriter(memory.NewLedger(), testLog, 1<<14, 0, 0)
	writer.Start()
	t.Cleanup(writer.Close)

	return allocator.NewService(store, writer, types.NewServiceRegistry("HTL,FLT,PKG"), testLog)
}

func TestRunConcurrencyTest_Passes(t *testing.T) {
	h := harness.New(newAllocator(t, memory.NewSequenceStore()), testLog)

	report, err := h.RunConcurrencyTest(context.Background(), "HTL", 500)
	if err != nil {
		t.Fatal(err)
	}

	if !report.Passed() {
		t.Fatalf("run failed: %+v", report)
	}
	if report.Requested != 500 || report.Unique != 500 {
		t.Fatalf("expected 500 unique of 500, got %d of %d", report.Unique, report.Requested)
	}
	if len(report.Duplicates) != 0 {
		t.Fatalf("duplicates: %v", report.Duplicates)
	}
	if report.Duration <= 0 {
		t.Fatal("duration not measured")
	}
}

// brokenStore races like the naive count-then-format implementation: it reads
// and writes its counter non-atomically, so concurrent callers collide.
type brokenStore struct {
	last atomic.Int64
}

func (s *brokenStore) Next(ctx context.Context, key models.SequenceKey) (int64, error) {
	v := s.last.Load()
	time.Sleep(time.Millisecond) // widen the read-modify-write window
	s.last.Store(v + 1)
	return v + 1, nil
}

func TestRunConcurrencyTest_DetectsDuplicates(t *testing.T) {
	h := harness.New(newAllocator(t, &brokenStore{}), testLog)

	report, err := h.RunConcurrencyTest(context.Background(), "HTL", 100)
	if err != nil {
		t.Fatal(err)
	}

	if report.Passed() {
		t.Fatal("a racing store must fail the run")
	}
	if len(report.Duplicates) == 0 {
		t.Fatal("expected duplicate references to be reported")
	}
	if report.Unique >= report.Requested {
		t.Fatalf("unique %d should be below requested %d", report.Unique, report.Requested)
	}
}

func TestRunConcurrencyTest_InvalidService(t *testing.T) {
	h := harness.New(newAllocator(t, memory.NewSequenceStore()), testLog)

	if _, err := h.RunConcurrencyTest(context.Background(), "TAXI", 10); err == nil {
		t.Fatal("expected error for unregistered service type")
	}
}
