package allocator

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
	"github.com/roamhub/booking-ref-system/pkg/metrics"
)

const defaultStoreTimeout = 2 * time.Second

// Service issues booking references. It coordinates the sequence store, the
// reference format and the ledger writer; it owns no counting state itself.
type Service struct {
	store    SequenceStore
	writer   *LedgerWriter
	registry *types.ServiceRegistry
	log      logger.Logger

	storeDriver  string
	storeTimeout time.Duration

	// fallbackSeq is the locally-monotonic backup disambiguator used only
	// when the random source fails.
	fallbackSeq atomic.Uint64

	// now is the clock; overridable in tests to pin the date partition.
	now func() time.Time
}

type Option func(*Service)

// WithStoreTimeout bounds a single sequence store call.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// WithClock replaces the allocator clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStoreDriver sets the driver name used in sequence store metrics.
func WithStoreDriver(name string) Option {
	return func(s *Service) {
		s.storeDriver = name
	}
}

func NewService(store SequenceStore, writer *LedgerWriter, registry *types.ServiceRegistry, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:        store,
		writer:       writer,
		registry:     registry,
		log:          log,
		storeDriver:  "memory",
		storeTimeout: defaultStoreTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allocate issues one booking reference for the given service type.
//
// Only an unknown service type is an error. A sequence store failure is
// absorbed into the degraded fallback path: the caller always leaves with a
// usable reference, losing one is worse than issuing a less elegant one.
func (s *Service) Allocate(ctx context.Context, service types.ServiceCode) (models.AllocationRecord, error) {
	ctx = wrap.WithAction(wrap.WithService(ctx, service.String()), "allocate_reference")
	start := time.Now()

	if !s.registry.Contains(service) {
		return models.AllocationRecord{}, wrap.Error(ctx, fmt.Errorf("%w: %q", types.ErrUnknownServiceType, service))
	}

	issuedAt := s.now().UTC()
	key := models.SequenceKey{
		DatePart:    DatePart(issuedAt),
		ServiceType: service,
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	seq, err := s.store.Next(storeCtx, key)
	cancel()
	metrics.RecordSequenceQuery(s.storeDriver, err)

	var rec models.AllocationRecord
	if err != nil {
		rec = s.fallback(ctx, service, fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err))
	} else {
		rec = models.AllocationRecord{
			BookingID:      FormatBookingID(key, seq),
			SequenceNumber: seq,
			DatePart:       key.DatePart,
			ServiceType:    service,
			IssuedAt:       issuedAt,
		}
	}

	// Ledger durability never gates the already-produced reference.
	s.writer.Enqueue(rec)

	metrics.RecordAllocation(service.String(), rec.Degraded, time.Since(start))
	s.log.Debug(wrap.WithBookingID(ctx, rec.BookingID), "reference allocated",
		"sequence_number", rec.SequenceNumber,
		"degraded", rec.Degraded,
	)

	return rec, nil
}

// fallback constructs the degraded reference when the store cannot produce a
// number in time.
func (s *Service) fallback(ctx context.Context, service types.ServiceCode, cause error) models.AllocationRecord {
	ctx = wrap.WithAction(ctx, types.ActionFallbackAllocation)

	issuedAt := s.now().UTC()

	nonce, err := NewNonce()
	if err != nil {
		// Random source down as well: fall back to the process-local counter.
		nonce = strconv.FormatUint(s.fallbackSeq.Add(1), 16)
		s.log.Warn(ctx, "random nonce unavailable, using local counter", "err", err.Error())
	}

	// Degraded records still carry the date partition so statistics can
	// group them by day; only the sequence number is absent.
	rec := models.AllocationRecord{
		BookingID:   FormatFallbackID(service, issuedAt, nonce),
		DatePart:    DatePart(issuedAt),
		ServiceType: service,
		IssuedAt:    issuedAt,
		Degraded:    true,
	}

	s.log.Warn(wrap.WithBookingID(ctx, rec.BookingID), "sequence store unavailable, issued fallback reference",
		"cause", cause.Error(),
	)

	return rec
}

// DatePartNow returns the current date partition by the allocator clock.
// The stats reporter uses it so "today" means the same thing on both paths.
func (s *Service) DatePartNow() string {
	return DatePart(s.now())
}
