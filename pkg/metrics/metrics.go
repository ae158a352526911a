package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_allocations_total",
			Help: "Total number of booking references issued",
		},
		[]string{"service_type", "mode"}, // mode: sequenced | fallback
	)

	AllocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_allocation_duration_seconds",
			Help:    "Allocation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service_type"},
	)

	SequenceStoreQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sequence_store_queries_total",
			Help: "Total number of sequence store Next calls",
		},
		[]string{"driver", "status"},
	)

	LedgerWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_writes_total",
			Help: "Total number of ledger append attempts",
		},
		[]string{"status"},
	)

	LedgerQueueDropsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_queue_drops_total",
			Help: "Allocation records dropped because the ledger queue was full",
		},
	)

	FeedConnectionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "allocation_feed_connections",
			Help: "Current number of live allocation feed WebSocket connections",
		},
	)

	RabbitMQMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_published_total",
			Help: "Total number of messages published to RabbitMQ",
		},
		[]string{"exchange", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordAllocation records one issued reference.
func RecordAllocation(serviceType string, degraded bool, duration time.Duration) {
	mode := "sequenced"
	if degraded {
		mode = "fallback"
	}
	AllocationsTotal.WithLabelValues(serviceType, mode).Inc()
	AllocationDuration.WithLabelValues(serviceType).Observe(duration.Seconds())
}

// RecordSequenceQuery records a sequence store Next call.
func RecordSequenceQuery(driver string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SequenceStoreQueriesTotal.WithLabelValues(driver, status).Inc()
}

// RecordLedgerWrite records a ledger append attempt.
func RecordLedgerWrite(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	LedgerWritesTotal.WithLabelValues(status).Inc()
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(exchange string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesPublished.WithLabelValues(exchange, status).Inc()
}
