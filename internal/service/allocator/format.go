package allocator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
)

// Wire format of a booking reference:
//
//	RHB-<SERVICE>-<YYYYMMDD>-<NNNN>            normal allocation
//	RHB-<SERVICE>-<EPOCHMS>-<NONCE>-FALLBACK   degraded allocation
const (
	refPrefix      = "RHB"
	fallbackSuffix = "FALLBACK"
	datePartLayout = "20060102"

	nonceBytes = 6 // 12 hex digits
)

// DatePart formats t as the UTC calendar date partition.
func DatePart(t time.Time) string {
	return t.UTC().Format(datePartLayout)
}

// FormatBookingID renders the normal reference. Sequence numbers are
// zero-padded to four digits; larger numbers widen the field, they are never
// truncated or wrapped.
func FormatBookingID(key models.SequenceKey, seq int64) string {
	return fmt.Sprintf("%s-%s-%s-%04d", refPrefix, key.ServiceType, key.DatePart, seq)
}

// FormatFallbackID renders the degraded reference issued when the sequence
// store is unavailable. The nonce disambiguates concurrent fallbacks within
// the same millisecond; the timestamp alone is not enough.
func FormatFallbackID(service types.ServiceCode, at time.Time, nonce string) string {
	return fmt.Sprintf("%s-%s-%d-%s-%s", refPrefix, service, at.UnixMilli(), nonce, fallbackSuffix)
}

// NewNonce returns a random hex disambiguator for fallback references.
func NewNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ParsedRef is the decoded form of a booking reference.
type ParsedRef struct {
	ServiceType    types.ServiceCode
	DatePart       string // empty for degraded references
	SequenceNumber int64  // zero for degraded references
	IssuedMilli    int64  // epoch milliseconds, degraded references only
	Nonce          string // degraded references only
	Degraded       bool
}

// ParseBookingID decodes a reference produced by FormatBookingID or
// FormatFallbackID.
func ParseBookingID(s string) (ParsedRef, error) {
	parts := strings.Split(s, "-")

	if len(parts) < 4 || parts[0] != refPrefix {
		return ParsedRef{}, fmt.Errorf("malformed booking reference %q", s)
	}

	service := types.ServiceCode(parts[1])

	if parts[len(parts)-1] == fallbackSuffix {
		if len(parts) != 5 {
			return ParsedRef{}, fmt.Errorf("malformed fallback reference %q", s)
		}
		ms, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return ParsedRef{}, fmt.Errorf("bad timestamp in fallback reference %q: %w", s, err)
		}
		return ParsedRef{
			ServiceType: service,
			IssuedMilli: ms,
			Nonce:       parts[3],
			Degraded:    true,
		}, nil
	}

	if len(parts) != 4 {
		return ParsedRef{}, fmt.Errorf("malformed booking reference %q", s)
	}
	if len(parts[2]) != len(datePartLayout) {
		return ParsedRef{}, fmt.Errorf("bad date part in booking reference %q", s)
	}
	if _, err := time.Parse(datePartLayout, parts[2]); err != nil {
		return ParsedRef{}, fmt.Errorf("bad date part in booking reference %q: %w", s, err)
	}
	seq, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || seq < 1 {
		return ParsedRef{}, fmt.Errorf("bad sequence number in booking reference %q", s)
	}

	return ParsedRef{
		ServiceType:    service,
		DatePart:       parts[2],
		SequenceNumber: seq,
	}, nil
}
