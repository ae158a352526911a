package allocator

import (
	"context"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
)

// SequenceStore is the authoritative source of the next sequence number for
// a counting partition. Implementations must be linearizable per key: two
// concurrent calls for the same key never observe the same number. Ordering
// across different keys is unconstrained.
//
// Next must honor ctx cancellation and apply its own bounded wait; an
// unavailable or stalled store returns an error and never a guessed number.
type SequenceStore interface {
	Next(ctx context.Context, key models.SequenceKey) (int64, error)
}

// Ledger is the append-only audit trail of issued references. It is never
// the source of truth for uniqueness; it records what the allocator issued.
type Ledger interface {
	// Append stores the record. A record with an already-known booking ID is
	// rejected with types.ErrDuplicateBookingID, never overwritten.
	Append(ctx context.Context, rec models.AllocationRecord) error

	// Records returns the records matching the filter. Zero-value filter
	// fields match everything.
	Records(ctx context.Context, filter LedgerFilter) ([]models.AllocationRecord, error)
}

// LedgerFilter narrows a ledger read. Empty fields are wildcards.
type LedgerFilter struct {
	DatePart    string
	ServiceType types.ServiceCode
}
