package handler

import (
	"context"
	"net/http"

	"github.com/roamhub/booking-ref-system/internal/adapter/http/handler/dto"
	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
)

type AllocationService interface {
	Allocate(ctx context.Context, service types.ServiceCode) (models.AllocationRecord, error)
}

type Allocation struct {
	service AllocationService
	l       logger.Logger
}

func NewAllocation(service AllocationService, l logger.Logger) *Allocation {
	return &Allocation{
		service: service,
		l:       l,
	}
}

// Create godoc
// @Summary      Allocate a booking reference
// @Description  Issues the next booking reference for the given service type. A sequence store outage degrades to a fallback reference instead of failing.
// @Tags         Allocations
// @Accept       json
// @Produce      json
// @Param        request body dto.AllocateRequest true "Service type"
// @Success      201  {object}  dto.AllocateResponse
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /allocations [post]
func (h *Allocation) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "http_allocate")

	var req dto.AllocateRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	rec, err := h.service.Allocate(ctx, types.ServiceCode(req.ServiceType))
	if err != nil {
		// The only caller-visible failure is input validation.
		if IsOneOf(err, types.ErrUnknownServiceType) {
			failedValidationResponse(w, err.Error())
			return
		}
		h.l.Error(wrap.ErrorCtx(ctx, err), "allocation failed", err)
		internalErrorResponse(w, "could not allocate a booking reference")
		return
	}

	if err := writeJSON(w, http.StatusCreated, envelope{"allocation": dto.ToAllocateResponse(rec)}, nil); err != nil {
		h.l.Error(ctx, "failed to write allocation response", err)
	}
}
