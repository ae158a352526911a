package types

import "testing"

func TestServiceRegistry_FromList(t *testing.T) {
	r := NewServiceRegistry("HTL, flt ,PKG,,")

	for _, code := range []ServiceCode{"HTL", "FLT", "PKG"} {
		if !r.Contains(code) {
			t.Fatalf("expected %s to be registered", code)
		}
	}
	if len(r.List()) != 3 {
		t.Fatalf("expected 3 codes, got %v", r.List())
	}
}

func TestServiceRegistry_ExactMatch(t *testing.T) {
	r := NewServiceRegistry("HTL,FLT")

	// Lookups never normalize: lower case input is a caller mistake.
	if r.Contains("htl") {
		t.Fatal("lower-case lookup must not match")
	}
	if r.Contains("HT") || r.Contains("HTLX") {
		t.Fatal("prefix or superstring must not match")
	}
	if r.Contains("PKG") {
		t.Fatal("unregistered code must not match")
	}
}
