package stats

import (
	"context"
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/internal/service/allocator"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
)

// Service aggregates the ledger for dashboards. It only reads; it shares no
// state with the allocation hot path and cannot slow it down.
type Service struct {
	ledger allocator.Ledger
	log    logger.Logger
	now    func() time.Time
}

func NewService(ledger allocator.Ledger, log logger.Logger) *Service {
	return &Service{
		ledger: ledger,
		log:    log,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to resolve "today". Tests pin it.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Stats builds the report for the optional filters. A nil datePart means
// today (UTC); a nil serviceType means all services. LastBookingID is the
// reference with the highest sequence number in the filtered set; degraded
// references carry no sequence and are counted but never selected as last.
func (s *Service) Stats(ctx context.Context, serviceType *string, datePart *string) (models.StatsReport, error) {
	ctx = wrap.WithAction(ctx, "stats_report")

	date := allocator.DatePart(s.now())
	if datePart != nil {
		date = *datePart
	}

	filter := allocator.LedgerFilter{DatePart: date}
	if serviceType != nil {
		filter.ServiceType = types.ServiceCode(*serviceType)
	}

	recs, err := s.ledger.Records(ctx, filter)
	if err != nil {
		return models.StatsReport{}, wrap.Error(ctx, err)
	}

	report := models.StatsReport{
		Date:             date,
		ServiceBreakdown: make(map[string]int),
	}

	var last *models.AllocationRecord
	for i := range recs {
		rec := recs[i]
		report.TotalBookings++
		report.ServiceBreakdown[rec.ServiceType.String()]++
		if rec.Degraded {
			report.DegradedBookings++
			continue
		}
		if last == nil || rec.SequenceNumber > last.SequenceNumber {
			last = &recs[i]
		}
	}
	if last != nil {
		id := last.BookingID
		report.LastBookingID = &id
	}

	return report, nil
}
