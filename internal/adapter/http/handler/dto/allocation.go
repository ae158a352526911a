package dto

import (
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
)

type AllocateRequest struct {
	ServiceType string `json:"service_type"`
}

type AllocateResponse struct {
	BookingID      string    `json:"booking_id"`
	SequenceNumber int64     `json:"sequence_number,omitempty"`
	DatePart       string    `json:"date_part"`
	ServiceType    string    `json:"service_type"`
	Degraded       bool      `json:"degraded"`
	IssuedAt       time.Time `json:"issued_at"`
}

func ToAllocateResponse(rec models.AllocationRecord) AllocateResponse {
	return AllocateResponse{
		BookingID:      rec.BookingID,
		SequenceNumber: rec.SequenceNumber,
		DatePart:       rec.DatePart,
		ServiceType:    rec.ServiceType.String(),
		Degraded:       rec.Degraded,
		IssuedAt:       rec.IssuedAt,
	}
}
