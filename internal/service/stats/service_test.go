package stats

import (
	"context"
	"testing"
	"time"

	"github.com/roamhub/booking-ref-system/internal/adapter/memory"
	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/pkg/logger"
)

var testLog = logger.InitLogger("stats-test", logger.LevelError)

func seedLedger(t *testing.T) *memory.Ledger {
	t.Helper()

	ledger := memory.NewLedger()
	ctx := context.Background()

	at := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	recs := []models.AllocationRecord{
		{BookingID: "RHB-HTL-20260831-0001", SequenceNumber: 1, DatePart: "20260831", ServiceType: "HTL", IssuedAt: at},
		{BookingID: "RHB-HTL-20260831-0002", SequenceNumber: 2, DatePart: "20260831", ServiceType: "HTL", IssuedAt: at},
		{BookingID: "RHB-FLT-20260831-0001", SequenceNumber: 1, DatePart: "20260831", ServiceType: "FLT", IssuedAt: at},
		{BookingID: "RHB-PKG-1756634400123-a1b2c3d4e5f6-FALLBACK", DatePart: "20260831", ServiceType: "PKG", IssuedAt: at, Degraded: true},
		{BookingID: "RHB-HTL-20260830-0001", SequenceNumber: 1, DatePart: "20260830", ServiceType: "HTL", IssuedAt: at.AddDate(0, 0, -1)},
	}
	for _, rec := range recs {
		if err := ledger.Append(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}
	return ledger
}

func strptr(s string) *string { return &s }

func TestStats_DayTotals(t *testing.T) {
	svc := NewService(seedLedger(t), testLog)

	report, err := svc.Stats(context.Background(), nil, strptr("20260831"))
	if err != nil {
		t.Fatal(err)
	}

	if report.Date != "20260831" {
		t.Fatalf("date: %s", report.Date)
	}
	if report.TotalBookings != 4 {
		t.Fatalf("total: %d", report.TotalBookings)
	}
	if report.DegradedBookings != 1 {
		t.Fatalf("degraded: %d", report.DegradedBookings)
	}
	if report.ServiceBreakdown["HTL"] != 2 || report.ServiceBreakdown["FLT"] != 1 || report.ServiceBreakdown["PKG"] != 1 {
		t.Fatalf("breakdown: %+v", report.ServiceBreakdown)
	}
}

func TestStats_LastBookingIgnoresDegraded(t *testing.T) {
	svc := NewService(seedLedger(t), testLog)

	report, err := svc.Stats(context.Background(), nil, strptr("20260831"))
	if err != nil {
		t.Fatal(err)
	}

	if report.LastBookingID == nil {
		t.Fatal("expected a last booking id")
	}
	if *report.LastBookingID != "RHB-HTL-20260831-0002" {
		t.Fatalf("last booking: %s", *report.LastBookingID)
	}
}

func TestStats_ServiceFilter(t *testing.T) {
	svc := NewService(seedLedger(t), testLog)

	report, err := svc.Stats(context.Background(), strptr("FLT"), strptr("20260831"))
	if err != nil {
		t.Fatal(err)
	}

	if report.TotalBookings != 1 {
		t.Fatalf("total: %d", report.TotalBookings)
	}
	if len(report.ServiceBreakdown) != 1 || report.ServiceBreakdown["FLT"] != 1 {
		t.Fatalf("breakdown: %+v", report.ServiceBreakdown)
	}
}

func TestStats_DefaultsToToday(t *testing.T) {
	svc := NewService(seedLedger(t), testLog).WithClock(func() time.Time {
		return time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	})

	report, err := svc.Stats(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if report.Date != "20260830" {
		t.Fatalf("date: %s", report.Date)
	}
	if report.TotalBookings != 1 {
		t.Fatalf("total: %d", report.TotalBookings)
	}
}

func TestStats_EmptyDay(t *testing.T) {
	svc := NewService(memory.NewLedger(), testLog)

	report, err := svc.Stats(context.Background(), nil, strptr("19990101"))
	if err != nil {
		t.Fatal(err)
	}

	if report.TotalBookings != 0 || report.LastBookingID != nil {
		t.Fatalf("empty day report: %+v", report)
	}
	if report.ServiceBreakdown == nil {
		t.Fatal("breakdown map must be present, not nil")
	}
}
