package types

import "strings"

type ServiceMode string

// Allocator Service - issues booking references over HTTP and feeds the ledger
// Conformance - drives N concurrent allocations and verifies the uniqueness invariant on demand
const (
	AllocatorService ServiceMode = "allocator-service"
	Conformance      ServiceMode = "conformance"
)

// ServiceCode is a short uppercase code identifying the kind of booking
// request (HTL - hotel inquiry, FLT - flight search, PKG - package).
type ServiceCode string

const (
	Hotel   ServiceCode = "HTL"
	Flight  ServiceCode = "FLT"
	Package ServiceCode = "PKG"
)

func (c ServiceCode) String() string {
	return string(c)
}

// ServiceRegistry holds the set of registered service codes. The set comes
// from configuration, so new codes are added without touching the allocator.
type ServiceRegistry struct {
	codes map[ServiceCode]struct{}
}

// NewServiceRegistry builds a registry from a comma-separated list of codes,
// e.g. "HTL,FLT,PKG". Codes are normalized to upper case.
func NewServiceRegistry(list string) *ServiceRegistry {
	r := &ServiceRegistry{codes: make(map[ServiceCode]struct{})}
	for _, raw := range strings.Split(list, ",") {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if code == "" {
			continue
		}
		r.codes[ServiceCode(code)] = struct{}{}
	}
	return r
}

// Contains reports whether the code is registered. Lookups are exact:
// a lower-case input is a validation failure, not an alternative spelling.
func (r *ServiceRegistry) Contains(code ServiceCode) bool {
	_, ok := r.codes[code]
	return ok
}

// List returns the registered codes in unspecified order.
func (r *ServiceRegistry) List() []ServiceCode {
	out := make([]ServiceCode, 0, len(r.codes))
	for c := range r.codes {
		out = append(out, c)
	}
	return out
}
