package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/roamhub/booking-ref-system/config"
	"github.com/roamhub/booking-ref-system/internal/adapter/http/handler"
	"github.com/roamhub/booking-ref-system/internal/adapter/http/middleware"
	"github.com/roamhub/booking-ref-system/internal/adapter/http/ws"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
)

const serverIPAddress = "%s:%s"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	allocation *handler.Allocation
	stats      *handler.Stats
	health     *handler.Health
	feed       *ws.Feed
}

func New(
	cfg config.Config,
	allocationService handler.AllocationService,
	statsService handler.StatsService,
	feed *ws.Feed,
	log logger.Logger,
) (*API, error) {
	if allocationService == nil {
		return nil, errors.New("allocation service is required")
	}
	if statsService == nil {
		return nil, errors.New("stats service is required")
	}

	routes := &handlers{
		allocation: handler.NewAllocation(allocationService, log),
		stats:      handler.NewStats(statsService, log),
		health:     handler.NewHealth(string(cfg.Mode), log),
		feed:       feed,
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(cfg.Auth.JWTSecret, log),
		addr:   fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Services.AllocatorService),
		cfg:    cfg,
		log:    log,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.mux))))
}
