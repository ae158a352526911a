package allocator

import (
	"strings"
	"testing"
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
)

func TestDatePart_UTC(t *testing.T) {
	// 23:30 in UTC+5 is 18:30 UTC the same day; 03:30 in UTC+5 is the
	// previous day in UTC. The partition must follow UTC, not local time.
	loc := time.FixedZone("UTC+5", 5*60*60)

	at := time.Date(2026, 3, 14, 3, 30, 0, 0, loc)
	if got := DatePart(at); got != "20260313" {
		t.Fatalf("expected UTC date 20260313, got %s", got)
	}

	at = time.Date(2026, 3, 14, 23, 30, 0, 0, loc)
	if got := DatePart(at); got != "20260314" {
		t.Fatalf("expected UTC date 20260314, got %s", got)
	}
}

func TestFormatBookingID(t *testing.T) {
	key := models.SequenceKey{DatePart: "20260831", ServiceType: "HTL"}

	if got := FormatBookingID(key, 1); got != "RHB-HTL-20260831-0001" {
		t.Fatalf("unexpected reference: %s", got)
	}
	if got := FormatBookingID(key, 42); got != "RHB-HTL-20260831-0042" {
		t.Fatalf("unexpected reference: %s", got)
	}
}

func TestFormatBookingID_WidensBeyondFourDigits(t *testing.T) {
	key := models.SequenceKey{DatePart: "20260831", ServiceType: "FLT"}

	if got := FormatBookingID(key, 10000); got != "RHB-FLT-20260831-10000" {
		t.Fatalf("sequence 10000 must widen, not truncate: %s", got)
	}
	if got := FormatBookingID(key, 123456); got != "RHB-FLT-20260831-123456" {
		t.Fatalf("sequence 123456 must widen, not truncate: %s", got)
	}
}

func TestParseBookingID_RoundTrip(t *testing.T) {
	key := models.SequenceKey{DatePart: "20260831", ServiceType: "PKG"}
	id := FormatBookingID(key, 7)

	ref, err := ParseBookingID(id)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ref.Degraded {
		t.Fatal("normal reference parsed as degraded")
	}
	if ref.ServiceType != "PKG" || ref.DatePart != "20260831" || ref.SequenceNumber != 7 {
		t.Fatalf("unexpected parse result: %+v", ref)
	}
}

func TestParseBookingID_FallbackRoundTrip(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	nonce, err := NewNonce()
	if err != nil {
		t.Fatalf("nonce: %v", err)
	}

	id := FormatFallbackID("HTL", at, nonce)
	if !strings.HasSuffix(id, "-FALLBACK") {
		t.Fatalf("fallback reference must end with -FALLBACK: %s", id)
	}

	ref, err := ParseBookingID(id)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !ref.Degraded {
		t.Fatal("fallback reference not marked degraded")
	}
	if ref.ServiceType != "HTL" || ref.IssuedMilli != at.UnixMilli() || ref.Nonce != nonce {
		t.Fatalf("unexpected parse result: %+v", ref)
	}
	if ref.SequenceNumber != 0 {
		t.Fatalf("degraded reference must carry no sequence, got %d", ref.SequenceNumber)
	}
}

func TestParseBookingID_Malformed(t *testing.T) {
	cases := []string{
		"",
		"RHB",
		"RHB-HTL-20260831",            // missing sequence
		"XXX-HTL-20260831-0001",       // wrong prefix
		"RHB-HTL-2026083-0001",        // short date
		"RHB-HTL-20261341-0001",       // month 13
		"RHB-HTL-20260831-0000",       // sequence below 1
		"RHB-HTL-20260831-abcd",       // non-numeric sequence
		"RHB-HTL-notams-ff-FALLBACK",  // non-numeric fallback timestamp
		"RHB-HTL-1-2-3-4-FALLBACK",    // too many parts
	}

	for _, in := range cases {
		if _, err := ParseBookingID(in); err == nil {
			t.Errorf("expected parse error for %q", in)
		}
	}
}

func TestNewNonce_Distinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		n, err := NewNonce()
		if err != nil {
			t.Fatalf("nonce: %v", err)
		}
		if len(n) != nonceBytes*2 {
			t.Fatalf("unexpected nonce length: %q", n)
		}
		if _, dup := seen[n]; dup {
			t.Fatalf("duplicate nonce %s", n)
		}
		seen[n] = struct{}{}
	}
}

var sinkID string

func BenchmarkFormatBookingID(b *testing.B) {
	key := models.SequenceKey{DatePart: "20260831", ServiceType: types.ServiceCode("HTL")}

	var seq int64
	for i := 0; i < b.N; i++ {
		seq++
		sinkID = FormatBookingID(key, seq)
	}
}
