package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/pkg/trm"
)

// SequenceStore is the durable sequence store over PostgreSQL. Each
// (date_part, service_type) partition is one row; Next increments it under
// the row lock inside a transaction, so concurrent callers serialize per key
// and different keys never contend. Restarting the process cannot replay a
// number - the row, not memory, is authoritative.
type SequenceStore struct {
	db  *pgxpool.Pool
	trm trm.TxManager
}

func NewSequenceStore(db *pgxpool.Pool, trm trm.TxManager) *SequenceStore {
	return &SequenceStore{db: db, trm: trm}
}

// Next atomically reserves and returns the next sequence number for the key.
// The caller bounds the wait through ctx; lock contention past the deadline
// surfaces as an error, never as a duplicate or a silently skipped number.
func (s *SequenceStore) Next(ctx context.Context, key models.SequenceKey) (int64, error) {
	var next int64

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		q := TxorDB(ctx, s.db)

		// Create the partition row on first use of a (day, service) pair.
		ensureQuery := `
			INSERT INTO booking_sequences (date_part, service_type, last_value)
			VALUES ($1, $2, 0)
			ON CONFLICT (date_part, service_type) DO NOTHING;`

		if _, err := q.Exec(ctx, ensureQuery, key.DatePart, key.ServiceType); err != nil {
			return fmt.Errorf("sequence repo: Next (ensure row): %w", err)
		}

		// UPDATE takes the row lock, read and increment happen under it -
		// same isolation as SELECT ... FOR UPDATE followed by UPDATE.
		nextQuery := `
			UPDATE booking_sequences
			SET last_value = last_value + 1, updated_at = now()
			WHERE date_part = $1 AND service_type = $2
			RETURNING last_value;`

		if err := q.QueryRow(ctx, nextQuery, key.DatePart, key.ServiceType).Scan(&next); err != nil {
			return fmt.Errorf("sequence repo: Next (increment): %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return next, nil
}
