package models

// StatsReport aggregates the ledger for operational dashboards. It is a pure
// read over recorded allocations and never touches the sequence store.
type StatsReport struct {
	Date             string         `json:"date"`
	TotalBookings    int            `json:"total_bookings"`
	DegradedBookings int            `json:"degraded_bookings"`
	ServiceBreakdown map[string]int `json:"service_breakdown"`
	LastBookingID    *string        `json:"last_booking_id,omitempty"`
}
