package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/internal/service/allocator"
)

// Ledger is the in-process append-only audit trail, keyed by booking ID.
// Reads return copies in append order and never block appends for long: the
// RWMutex is held only for the map/slice operations.
type Ledger struct {
	mu      sync.RWMutex
	byID    map[string]models.AllocationRecord
	ordered []string
}

func NewLedger() *Ledger {
	return &Ledger{
		byID: make(map[string]models.AllocationRecord),
	}
}

// Append stores the record. Duplicate booking IDs are rejected to preserve
// audit integrity; the existing record is never overwritten.
func (l *Ledger) Append(ctx context.Context, rec models.AllocationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byID[rec.BookingID]; exists {
		return fmt.Errorf("%w: %s", types.ErrDuplicateBookingID, rec.BookingID)
	}

	l.byID[rec.BookingID] = rec
	l.ordered = append(l.ordered, rec.BookingID)
	return nil
}

// Records returns the matching records in append order.
func (l *Ledger) Records(ctx context.Context, filter allocator.LedgerFilter) ([]models.AllocationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.AllocationRecord, 0, len(l.ordered))
	for _, id := range l.ordered {
		rec := l.byID[id]
		if filter.DatePart != "" && rec.DatePart != filter.DatePart {
			continue
		}
		if filter.ServiceType != "" && rec.ServiceType != filter.ServiceType {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Len returns the number of recorded allocations.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ordered)
}
