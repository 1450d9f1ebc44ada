package txtype

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pointline/pointline-api/internal/pkg/response"
	"github.com/pointline/pointline-api/internal/pkg/validator"
)

// Handler exposes transaction type endpoints
type Handler struct {
	svc *Service
}

// NewHandler creates transaction type handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Slug          string `json:"slug" validate:"required,slug,max=60"`
	Name          string `json:"name" validate:"required,min=2,max=80"`
	Multiplier    int    `json:"multiplier" validate:"required,multiplier"`
	AllowNegative bool   `json:"allow_negative"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	var req createRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	tt, err := h.svc.Create(r.Context(), CreateInput{
		TenantID:      tenantID,
		Slug:          req.Slug,
		Name:          req.Name,
		Multiplier:    req.Multiplier,
		AllowNegative: req.AllowNegative,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMultiplier):
			response.BadRequest(w, "multiplier must be exactly -1 or 1")
		case errors.Is(err, ErrSlugTaken):
			response.Conflict(w, "transaction type slug already exists")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, tt)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	types, err := h.svc.ListByTenant(r.Context(), tenantID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, types)
}

// Routes returns the transaction type router, mounted under a tenant route.
func (h *Handler) Routes(scopeTenant func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(scopeTenant)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	return r
}
