// Package harness drives concurrent allocation load and verifies the
// uniqueness invariant. It is the acceptance check for an allocator+store
// pairing and runs only on demand, as its own application mode.
package harness

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
)

// Allocator is the subsystem under test.
type Allocator interface {
	Allocate(ctx context.Context, service types.ServiceCode) (models.AllocationRecord, error)
}

// Report summarizes one concurrency run.
type Report struct {
	Requested  int           `json:"requested"`
	Unique     int           `json:"unique"`
	Degraded   int           `json:"degraded"`
	Duplicates []string      `json:"duplicates"`
	Duration   time.Duration `json:"duration"`
}

// Passed reports whether the uniqueness invariant held.
func (r Report) Passed() bool {
	return len(r.Duplicates) == 0 && r.Unique == r.Requested
}

type Harness struct {
	alloc Allocator
	log   logger.Logger
}

func New(alloc Allocator, log logger.Logger) *Harness {
	return &Harness{alloc: alloc, log: log}
}

// RunConcurrencyTest dispatches `concurrency` simultaneous allocations for
// the service type and reports distinct-count and any duplicates. All
// goroutines block on one start signal so the calls genuinely race.
func (h *Harness) RunConcurrencyTest(ctx context.Context, service types.ServiceCode, concurrency int) (Report, error) {
	ctx = wrap.WithAction(wrap.WithService(ctx, service.String()), "conformance_run")

	ids := make([]string, concurrency)
	degraded := make([]bool, concurrency)
	errs := make([]error, concurrency)

	start := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			rec, err := h.alloc.Allocate(ctx, service)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = rec.BookingID
			degraded[i] = rec.Degraded
		}(i)
	}

	began := time.Now()
	close(start)
	wg.Wait()
	elapsed := time.Since(began)

	for _, err := range errs {
		if err != nil {
			// Allocate only fails on invalid input; that is a harness
			// misconfiguration, not a store problem.
			return Report{}, wrap.Error(ctx, err)
		}
	}

	report := Report{
		Requested: concurrency,
		Duration:  elapsed,
	}

	seen := make(map[string]int, concurrency)
	for i, id := range ids {
		seen[id]++
		if degraded[i] {
			report.Degraded++
		}
	}
	report.Unique = len(seen)

	for id, n := range seen {
		if n > 1 {
			report.Duplicates = append(report.Duplicates, id)
		}
	}
	sort.Strings(report.Duplicates)

	h.log.Info(ctx, "conformance run finished",
		"requested", report.Requested,
		"unique", report.Unique,
		"degraded", report.Degraded,
		"duplicates", len(report.Duplicates),
		"duration", report.Duration.String(),
	)

	return report, nil
}
