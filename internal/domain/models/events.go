package models

import (
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/types"
)

/* ======================= rabbitmq ======================= */

// AllocationMessage is published to the booking exchange for downstream
// consumers (email/WhatsApp notification services embed the reference into
// the messages they send).
type AllocationMessage struct {
	BookingID      string            `json:"booking_id"`
	ServiceType    types.ServiceCode `json:"service_type"`
	DatePart       string            `json:"date_part"`
	SequenceNumber int64             `json:"sequence_number"`
	Degraded       bool              `json:"degraded"`
	IssuedAt       time.Time         `json:"issued_at"`
	CorrelationID  string            `json:"correlation_id"`
}

/* ======================= websocket ======================= */

// AllocationFeedMessage is pushed to ops dashboard clients subscribed to the
// live allocation feed.
type AllocationFeedMessage struct {
	MsgType     string            `json:"type"` // always "allocation"
	BookingID   string            `json:"booking_id"`
	ServiceType types.ServiceCode `json:"service_type"`
	Degraded    bool              `json:"degraded"`
	IssuedAt    time.Time         `json:"issued_at"`
}
