package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/internal/service/allocator"
	"github.com/roamhub/booking-ref-system/pkg/postgres"
	"github.com/roamhub/booking-ref-system/pkg/trm"
)

// Ledger is the durable append-only audit trail over PostgreSQL. The primary
// key on booking_id enforces the no-overwrite rule at the storage level.
type Ledger struct {
	db  *pgxpool.Pool
	trm trm.TxManager
}

func NewLedger(db *pgxpool.Pool, trm trm.TxManager) *Ledger {
	return &Ledger{db: db, trm: trm}
}

func (l *Ledger) Append(ctx context.Context, rec models.AllocationRecord) error {
	q := TxorDB(ctx, l.db)

	query := `
		INSERT INTO booking_ledger (booking_id, sequence_number, date_part, service_type, issued_at, degraded)
		VALUES ($1, $2, $3, $4, $5, $6);`

	_, err := q.Exec(ctx, query,
		rec.BookingID,
		rec.SequenceNumber,
		rec.DatePart,
		rec.ServiceType,
		rec.IssuedAt,
		rec.Degraded,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", types.ErrDuplicateBookingID, rec.BookingID)
		}
		return fmt.Errorf("ledger repo: Append: %w", err)
	}

	return nil
}

// Records reads matching records in insertion order. The read runs in a
// read-only transaction so it can never hold locks that contend with the
// allocation hot path.
func (l *Ledger) Records(ctx context.Context, filter allocator.LedgerFilter) ([]models.AllocationRecord, error) {
	var out []models.AllocationRecord

	err := l.trm.DoReadOnly(ctx, func(ctx context.Context) error {
		q := TxorDB(ctx, l.db)

		query := `
			SELECT booking_id, sequence_number, date_part, service_type, issued_at, degraded
			FROM booking_ledger
			WHERE ($1 = '' OR date_part = $1)
			  AND ($2 = '' OR service_type = $2)
			ORDER BY issued_at, booking_id;`

		rows, err := q.Query(ctx, query, filter.DatePart, string(filter.ServiceType))
		if err != nil {
			return fmt.Errorf("ledger repo: Records: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var rec models.AllocationRecord
			if err := rows.Scan(
				&rec.BookingID,
				&rec.SequenceNumber,
				&rec.DatePart,
				&rec.ServiceType,
				&rec.IssuedAt,
				&rec.Degraded,
			); err != nil {
				return fmt.Errorf("ledger repo: Records (scan): %w", err)
			}
			out = append(out, rec)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
