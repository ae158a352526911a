package allocator_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/roamhub/booking-ref-system/internal/adapter/memory"
	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/internal/service/allocator"
	"github.com/roamhub/booking-ref-system/pkg/logger"
)

var testLog = logger.InitLogger("allocator-test", logger.LevelError)

// failingStore simulates a sequence store outage.
type failingStore struct{}

func (failingStore) Next(ctx context.Context, key models.SequenceKey) (int64, error) {
	return 0, errors.New("connection refused")
}

// blockingStore never answers; only the caller's deadline ends the call.
type blockingStore struct{}

func (blockingStore) Next(ctx context.Context, key models.SequenceKey) (int64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func newTestService(t *testing.T, store allocator.SequenceStore, ledger allocator.Ledger, opts ...allocator.Option) (*allocator.Service, *allocator.LedgerWriter) {
	t.Helper()

	writer := allocator.NewLedgerWriter(ledger, testLog, 1024, 1, time.Millisecond)
	writer.Start()
	t.Cleanup(writer.Close)

	registry := types.NewServiceRegistry("HTL,FLT,PKG")
	return allocator.NewService(store, writer, registry, testLog, opts...), writer
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAllocate_SequentialSameDay(t *testing.T) {
	at := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	ledger := memory.NewLedger()
	svc, _ := newTestService(t, memory.NewSequenceStore(), ledger, allocator.WithClock(fixedClock(at)))

	want := []string{
		"RHB-HTL-20260831-0001",
		"RHB-HTL-20260831-0002",
		"RHB-HTL-20260831-0003",
	}
	for i, w := range want {
		rec, err := svc.Allocate(context.Background(), "HTL")
		if err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
		if rec.BookingID != w {
			t.Fatalf("allocate %d: got %s want %s", i, rec.BookingID, w)
		}
		if rec.SequenceNumber != int64(i+1) {
			t.Fatalf("allocate %d: sequence %d", i, rec.SequenceNumber)
		}
		if rec.Degraded {
			t.Fatalf("allocate %d: unexpectedly degraded", i)
		}
	}
}

func TestAllocate_IndependentPartitions(t *testing.T) {
	at := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, memory.NewSequenceStore(), memory.NewLedger(), allocator.WithClock(fixedClock(at)))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Allocate(ctx, "HTL"); err != nil {
			t.Fatal(err)
		}
	}

	// A different service type counts from 1 regardless of HTL's progress.
	rec, err := svc.Allocate(ctx, "FLT")
	if err != nil {
		t.Fatal(err)
	}
	if rec.BookingID != "RHB-FLT-20260831-0001" {
		t.Fatalf("expected FLT to start at 0001, got %s", rec.BookingID)
	}
}

func TestAllocate_DailyReset(t *testing.T) {
	current := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	svc, _ := newTestService(t, memory.NewSequenceStore(), memory.NewLedger(), allocator.WithClock(clock))
	ctx := context.Background()

	rec, err := svc.Allocate(ctx, "HTL")
	if err != nil {
		t.Fatal(err)
	}
	if rec.BookingID != "RHB-HTL-20260831-0001" {
		t.Fatalf("before midnight: %s", rec.BookingID)
	}

	mu.Lock()
	current = time.Date(2026, 9, 1, 0, 0, 1, 0, time.UTC)
	mu.Unlock()

	rec, err = svc.Allocate(ctx, "HTL")
	if err != nil {
		t.Fatal(err)
	}
	if rec.BookingID != "RHB-HTL-20260901-0001" {
		t.Fatalf("after midnight the counter must restart at 0001, got %s", rec.BookingID)
	}
}

func TestAllocate_ConcurrentUnique(t *testing.T) {
	const n = 50

	svc, _ := newTestService(t, memory.NewSequenceStore(), memory.NewLedger())

	var wg sync.WaitGroup
	start := make(chan struct{})
	seqs := make([]int64, n)
	ids := make([]string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			rec, err := svc.Allocate(context.Background(), "FLT")
			if err != nil {
				t.Errorf("allocate: %v", err)
				return
			}
			seqs[i] = rec.SequenceNumber
			ids[i] = rec.BookingID
		}(i)
	}
	close(start)
	wg.Wait()

	seenSeq := make(map[int64]bool, n)
	seenID := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if seqs[i] < 1 || seqs[i] > n {
			t.Fatalf("sequence %d outside [1,%d]", seqs[i], n)
		}
		if seenSeq[seqs[i]] {
			t.Fatalf("duplicate sequence number %d", seqs[i])
		}
		if seenID[ids[i]] {
			t.Fatalf("duplicate booking id %s", ids[i])
		}
		seenSeq[seqs[i]] = true
		seenID[ids[i]] = true
	}
}

func TestAllocate_UnknownServiceType(t *testing.T) {
	svc, _ := newTestService(t, memory.NewSequenceStore(), memory.NewLedger())

	_, err := svc.Allocate(context.Background(), "TAXI")
	if !errors.Is(err, types.ErrUnknownServiceType) {
		t.Fatalf("expected ErrUnknownServiceType, got %v", err)
	}
}

func TestAllocate_FallbackOnStoreFailure(t *testing.T) {
	svc, _ := newTestService(t, failingStore{}, memory.NewLedger())

	rec, err := svc.Allocate(context.Background(), "HTL")
	if err != nil {
		t.Fatalf("store failure must not surface to the caller: %v", err)
	}
	if !rec.Degraded {
		t.Fatal("record not marked degraded")
	}
	if !strings.HasPrefix(rec.BookingID, "RHB-HTL-") || !strings.HasSuffix(rec.BookingID, "-FALLBACK") {
		t.Fatalf("unexpected fallback reference: %s", rec.BookingID)
	}
	if rec.SequenceNumber != 0 {
		t.Fatalf("degraded record must carry no sequence, got %d", rec.SequenceNumber)
	}
	if rec.DatePart == "" {
		t.Fatal("degraded record must still carry the date partition")
	}
}

func TestAllocate_FallbackOnStoreTimeout(t *testing.T) {
	svc, _ := newTestService(t, blockingStore{}, memory.NewLedger(),
		allocator.WithStoreTimeout(10*time.Millisecond))

	rec, err := svc.Allocate(context.Background(), "PKG")
	if err != nil {
		t.Fatalf("slow store must degrade, not fail: %v", err)
	}
	if !rec.Degraded {
		t.Fatal("record not marked degraded")
	}
}

func TestAllocate_ConcurrentFallbacksDistinct(t *testing.T) {
	const n = 100

	// Pinned clock: every fallback shares the same millisecond, so only the
	// nonce keeps them apart.
	at := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, failingStore{}, memory.NewLedger(), allocator.WithClock(fixedClock(at)))

	var wg sync.WaitGroup
	start := make(chan struct{})
	ids := make([]string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			rec, err := svc.Allocate(context.Background(), "HTL")
			if err != nil {
				t.Errorf("allocate: %v", err)
				return
			}
			ids[i] = rec.BookingID
		}(i)
	}
	close(start)
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate fallback reference %s", id)
		}
		seen[id] = true
	}
}

func TestAllocate_RecordsReachLedger(t *testing.T) {
	ledger := memory.NewLedger()
	svc, writer := newTestService(t, memory.NewSequenceStore(), ledger)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := svc.Allocate(ctx, "HTL"); err != nil {
			t.Fatal(err)
		}
	}

	// Close drains the queue; after it returns every record is durable.
	writer.Close()

	if got := ledger.Len(); got != 5 {
		t.Fatalf("expected 5 ledger records, got %d", got)
	}
}

func BenchmarkAllocate(b *testing.B) {
	writer := allocator.NewLedgerWriter(memory.NewLedger(), testLog, 1<<16, 0, 0)
	writer.Start()
	defer writer.Close()

	svc := allocator.NewService(memory.NewSequenceStore(), writer, types.NewServiceRegistry("HTL"), testLog)
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Allocate(ctx, "HTL"); err != nil {
			b.Fatal(err)
		}
	}
}
