package types

import "errors"

var (
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrStoreUnavailable   = errors.New("sequence store unavailable")
	ErrDuplicateBookingID = errors.New("booking id already recorded")
	ErrLedgerWriteFailed  = errors.New("ledger write failed")
	ErrNotFound           = errors.New("requested item not found")
)
