package customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pointline/pointline-api/internal/pkg/response"
	"github.com/pointline/pointline-api/internal/pkg/validator"
)

// Handler exposes customer endpoints
type Handler struct {
	svc *Service
}

// NewHandler creates customer handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type enrollRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	var req enrollRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}
	userID, _ := uuid.Parse(req.UserID)

	c, err := h.svc.Enroll(r.Context(), tenantID, userID)
	if err != nil {
		if errors.Is(err, ErrAlreadyLinked) {
			response.Conflict(w, "user already enrolled in this tenant")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "customerID"))
	if err != nil {
		response.BadRequest(w, "invalid customer id")
		return
	}

	c, err := h.svc.GetByID(r.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "customer not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	customers, err := h.svc.ListByTenant(r.Context(), tenantID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, customers)
}

