// Package memory provides the in-process sequence store and ledger. They
// back single-instance deployments and the conformance harness; multi
// instance deployments substitute the postgres adapters behind the same
// interfaces.
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
)

// SequenceStore keeps one atomic counter per sequence key. Counters for
// different keys never share a lock, so unrelated service types and days
// proceed fully in parallel. The date is part of the key, so a new day is a
// fresh counter starting at 1 - there is no reset operation.
type SequenceStore struct {
	counters sync.Map // models.SequenceKey -> *atomic.Int64
}

func NewSequenceStore() *SequenceStore {
	return &SequenceStore{}
}

// Next returns the next sequence number for the key. The atomic add makes
// the increment-and-read linearizable; concurrent callers can never observe
// the same value.
func (s *SequenceStore) Next(ctx context.Context, key models.SequenceKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c, _ := s.counters.LoadOrStore(key, new(atomic.Int64))
	return c.(*atomic.Int64).Add(1), nil
}

// Last returns the last issued number for the key without consuming one.
// Zero means nothing was issued yet.
func (s *SequenceStore) Last(key models.SequenceKey) int64 {
	c, ok := s.counters.Load(key)
	if !ok {
		return 0
	}
	return c.(*atomic.Int64).Load()
}
