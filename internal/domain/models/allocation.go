package models

import (
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/types"
)

// SequenceKey identifies one independent counting partition: one UTC
// calendar day of one service type. The date is encoded into the key, so a
// new day simply means a new key - there is no reset operation anywhere.
type SequenceKey struct {
	DatePart    string            // YYYYMMDD, UTC
	ServiceType types.ServiceCode // HTL, FLT, PKG, ...
}

// AllocationRecord is the immutable audit entry for one issued reference.
// It is created exactly once by the allocator and never mutated; the ledger
// keeps it indefinitely.
type AllocationRecord struct {
	BookingID string            `json:"booking_id"`
	// SequenceNumber is 1-based within the key partition. Zero for degraded
	// allocations, which carry no sequence.
	SequenceNumber int64             `json:"sequence_number"`
	DatePart       string            `json:"date_part"`
	ServiceType    types.ServiceCode `json:"service_type"`
	IssuedAt       time.Time         `json:"issued_at"`
	Degraded       bool              `json:"degraded"`
}

// Key returns the counting partition the record belongs to.
func (r AllocationRecord) Key() SequenceKey {
	return SequenceKey{DatePart: r.DatePart, ServiceType: r.ServiceType}
}
