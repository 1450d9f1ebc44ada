package accounttype

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pointline/pointline-api/internal/pkg/response"
	"github.com/pointline/pointline-api/internal/pkg/validator"
)

// Handler exposes account type endpoints
type Handler struct {
	repo Repository
}

// NewHandler creates account type handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type createRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
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

	at := &AccountType{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := h.repo.Create(r.Context(), at); err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.Conflict(w, "account type name already exists")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, at)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	types, err := h.repo.ListByTenant(r.Context(), tenantID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, types)
}

// Routes returns the account type router, mounted under a tenant route.
func (h *Handler) Routes(scopeTenant func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(scopeTenant)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	return r
}
