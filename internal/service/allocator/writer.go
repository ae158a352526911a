package allocator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
	"github.com/roamhub/booking-ref-system/pkg/metrics"
)

// Publisher receives committed allocation records, best-effort. Used to fan
// records out to the message broker and the live WS feed.
type Publisher interface {
	Publish(ctx context.Context, rec models.AllocationRecord)
}

// LedgerWriter decouples ledger durability from the allocation hot path.
// Enqueue never blocks; a background worker appends with bounded retries and
// fans successful records out to the publishers. Failures are logged and
// counted, never surfaced to the allocation caller.
type LedgerWriter struct {
	ledger     Ledger
	log        logger.Logger
	queue      chan models.AllocationRecord
	retries    int
	retryDelay time.Duration
	publishers []Publisher

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewLedgerWriter(ledger Ledger, log logger.Logger, buffer, retries int, retryDelay time.Duration, publishers ...Publisher) *LedgerWriter {
	if buffer <= 0 {
		buffer = 1024
	}
	if retries < 0 {
		retries = 0
	}
	return &LedgerWriter{
		ledger:     ledger,
		log:        log,
		queue:      make(chan models.AllocationRecord, buffer),
		retries:    retries,
		retryDelay: retryDelay,
		publishers: publishers,
	}
}

// Start launches the background worker.
func (w *LedgerWriter) Start() {
	w.wg.Add(1)
	go w.run()
}

// Enqueue hands a record to the writer without blocking. A full queue drops
// the record from the audit trail (counted), the allocation itself already
// succeeded.
func (w *LedgerWriter) Enqueue(rec models.AllocationRecord) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}

	select {
	case w.queue <- rec:
		w.mu.Unlock()
	default:
		w.mu.Unlock()
		metrics.LedgerQueueDropsTotal.Inc()
		ctx := wrap.WithAction(context.Background(), types.ActionLedgerWriteFailed)
		w.log.Warn(wrap.WithBookingID(ctx, rec.BookingID), "ledger queue full, dropping record")
	}
}

// Close stops accepting records, drains the queue and waits for the worker.
func (w *LedgerWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *LedgerWriter) run() {
	defer w.wg.Done()

	for rec := range w.queue {
		ctx := wrap.WithBookingID(context.Background(), rec.BookingID)
		w.append(ctx, rec)

		for _, p := range w.publishers {
			p.Publish(ctx, rec)
		}
	}
}

func (w *LedgerWriter) append(ctx context.Context, rec models.AllocationRecord) {
	var err error
	for attempt := 0; attempt <= w.retries; attempt++ {
		err = w.ledger.Append(ctx, rec)
		metrics.RecordLedgerWrite(err)
		if err == nil {
			return
		}

		// A duplicate key means a bug upstream, not a transient fault.
		// Rejecting protects audit integrity; retrying cannot help.
		if errors.Is(err, types.ErrDuplicateBookingID) {
			w.log.Error(wrap.WithAction(ctx, types.ActionLedgerWriteFailed), "duplicate booking id rejected by ledger", err)
			return
		}

		time.Sleep(w.retryDelay)
	}

	err = fmt.Errorf("%w: %v", types.ErrLedgerWriteFailed, err)
	w.log.Error(wrap.WithAction(ctx, types.ActionLedgerWriteFailed), "ledger write failed after retries", err,
		"attempts", w.retries+1,
	)
}
