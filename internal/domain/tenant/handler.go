package tenant

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pointline/pointline-api/internal/pkg/response"
	"github.com/pointline/pointline-api/internal/pkg/validator"
)

// Handler exposes tenant endpoints
type Handler struct {
	svc *Service
}

// NewHandler creates tenant handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Onboard(w http.ResponseWriter, r *http.Request) {
	var req OnboardRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	t, err := h.svc.Onboard(r.Context(), OnboardInput{
		Name:          req.Name,
		Slug:          req.Slug,
		PointsPerUnit: req.PointsPerUnit,
		ExpiryDays:    req.ExpiryDays,
	})
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(w, "tenant slug already in use")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, ToResponse(t))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	t, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "tenant not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToResponse(t))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	tenants, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, ToResponse(t))
	}
	response.OK(w, out)
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.svc.Activate)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.svc.Deactivate)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	if err := fn(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "tenant not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
