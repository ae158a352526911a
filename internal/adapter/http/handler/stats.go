package handler

import (
	"context"
	"net/http"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
)

type StatsService interface {
	Stats(ctx context.Context, serviceType *string, datePart *string) (models.StatsReport, error)
}

type Stats struct {
	service StatsService
	l       logger.Logger
}

func NewStats(service StatsService, l logger.Logger) *Stats {
	return &Stats{
		service: service,
		l:       l,
	}
}

// Report godoc
// @Summary      Allocation statistics
// @Description  Returns totals, per-service breakdown and the last issued reference for a day. Defaults to today / all services.
// @Tags         Stats
// @Produce      json
// @Param        service_type  query  string  false  "Service code filter (HTL, FLT, PKG)"
// @Param        date          query  string  false  "Date partition YYYYMMDD"
// @Success      200  {object}  models.StatsReport
// @Security     BearerAuth
// @Router       /stats [get]
func (h *Stats) Report(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "http_stats")

	var serviceType, datePart *string
	if v := r.URL.Query().Get("service_type"); v != "" {
		serviceType = &v
	}
	if v := r.URL.Query().Get("date"); v != "" {
		datePart = &v
	}

	report, err := h.service.Stats(ctx, serviceType, datePart)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "stats report failed", err)
		errorResponse(w, GetCode(err), "could not build the stats report")
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"stats": report}, nil); err != nil {
		h.l.Error(ctx, "failed to write stats response", err)
	}
}
