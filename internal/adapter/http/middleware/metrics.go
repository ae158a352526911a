package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/roamhub/booking-ref-system/pkg/metrics"
)

const metricsServiceLabel = "allocator"

// Metrics records request count and duration per method/path/status.
func (m *Middleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		metrics.HttpRequestsInFlight.WithLabelValues(metricsServiceLabel).Inc()
		defer metrics.HttpRequestsInFlight.WithLabelValues(metricsServiceLabel).Dec()

		rw := &metricsResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPMetrics(metricsServiceLabel, r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type metricsResponseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *metricsResponseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Hijack lets the websocket upgrade pass through the wrapped writer.
func (rw *metricsResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}
