package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System health
	a.mux.HandleFunc("/health", a.routes.health.HealthCheck)

	a.setupSwaggerRoutes()
	a.setupMetricsRoute()

	// Allocation API
	a.mux.HandleFunc("POST /allocations", a.routes.allocation.Create) // Allocate a new booking reference

	// Ops endpoints, bearer-guarded when a JWT secret is configured
	a.mux.Handle("GET /stats", a.m.Auth(http.HandlerFunc(a.routes.stats.Report)))           // Daily allocation statistics
	a.mux.Handle("GET /ws/allocations", a.m.Auth(http.HandlerFunc(a.routes.feed.HandleWS))) // Live allocation feed
}

// setupSwaggerRoutes configures the Swagger UI endpoint
func (a *API) setupSwaggerRoutes() {
	swaggerURL := httpSwagger.InstanceName("allocator")
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func (a *API) setupMetricsRoute() {
	a.mux.Handle("/metrics", promhttp.Handler())
}
