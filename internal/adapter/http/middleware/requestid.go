package middleware

import (
	"net/http"

	"github.com/roamhub/booking-ref-system/internal/domain/types"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
	"github.com/roamhub/booking-ref-system/pkg/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID (or adopts the client-provided one)
// and carries it in the context for logging and tracing.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.MustNew().String()
		}

		ctx := wrap.WithRequestID(r.Context(), id)
		ctx = types.WithRequestIDContext(ctx, id)

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
