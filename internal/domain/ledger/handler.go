package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pointline/pointline-api/internal/domain/customer"
	"github.com/pointline/pointline-api/internal/domain/tenant"
	"github.com/pointline/pointline-api/internal/domain/txtype"
	"github.com/pointline/pointline-api/internal/middleware"
	"github.com/pointline/pointline-api/internal/pkg/response"
	"github.com/pointline/pointline-api/internal/pkg/validator"
)

// Handler exposes the ledger endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates ledger handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type accountPath struct {
	tenantID      uuid.UUID
	customerID    uuid.UUID
	accountTypeID uuid.UUID
}

func parseAccountPath(r *http.Request) (accountPath, string) {
	var p accountPath
	var err error
	if p.tenantID, err = uuid.Parse(chi.URLParam(r, "tenantID")); err != nil {
		return p, "invalid tenant id"
	}
	if p.customerID, err = uuid.Parse(chi.URLParam(r, "customerID")); err != nil {
		return p, "invalid customer id"
	}
	if p.accountTypeID, err = uuid.Parse(chi.URLParam(r, "accountTypeID")); err != nil {
		return p, "invalid account type id"
	}
	return p, ""
}

// Post handles POST /transactions for an account.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	path, msg := parseAccountPath(r)
	if msg != "" {
		response.BadRequest(w, msg)
		return
	}

	var req PostTransactionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	in, err := req.toInput(path.tenantID, path.customerID, path.accountTypeID, middleware.GetUserID(r.Context()))
	if err != nil {
		response.BadRequest(w, "invalid request field: "+err.Error())
		return
	}

	result, err := h.svc.PostTransaction(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, PostTransactionResponse{
		Balance:     result.Balance,
		Transaction: result.Transaction,
		Tenant:      result.Tenant,
	})
}

// Balance handles GET /balance for an account.
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	path, msg := parseAccountPath(r)
	if msg != "" {
		response.BadRequest(w, msg)
		return
	}

	balance, err := h.svc.GetBalance(r.Context(), path.tenantID, path.customerID, path.accountTypeID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, BalanceResponse{
		TenantID:      path.tenantID,
		CustomerID:    path.customerID,
		AccountTypeID: path.accountTypeID,
		Balance:       balance,
	})
}

// List handles GET /transactions for an account.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	path, msg := parseAccountPath(r)
	if msg != "" {
		response.BadRequest(w, msg)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	txns, err := h.svc.ListTransactions(r.Context(), path.tenantID, path.customerID, path.accountTypeID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, txns)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var insufficient *InsufficientBalanceError
	switch {
	case errors.As(err, &insufficient):
		response.BadRequestWithCode(w, "INSUFFICIENT_BALANCE", "insufficient balance", map[string]string{
			"balance":          insufficient.Balance.String(),
			"requested_amount": insufficient.Requested.String(),
		})
	case errors.Is(err, ErrZeroAmount):
		response.BadRequest(w, "amount must be non-zero")
	case errors.Is(err, ErrReasonTooLong):
		response.BadRequest(w, "reason exceeds 255 characters")
	case errors.Is(err, ErrUnknownReference):
		response.BadRequest(w, "referenced transaction not found")
	case errors.Is(err, ErrNegativeNotAllowed):
		response.BadRequest(w, "negative amount not allowed for this transaction type")
	case errors.Is(err, ErrNoAccount):
		response.BadRequest(w, "account does not exist and cannot be opened by this transaction")
	case errors.Is(err, ErrVersionConflict):
		response.Conflict(w, "account was modified concurrently, please retry")
	case errors.Is(err, tenant.ErrNotFound):
		response.NotFound(w, "tenant not found")
	case errors.Is(err, tenant.ErrInactive):
		response.BadRequest(w, "tenant is inactive")
	case errors.Is(err, customer.ErrNotFound):
		response.NotFound(w, "customer not found")
	case errors.Is(err, txtype.ErrNotFound):
		response.BadRequest(w, "unknown transaction type")
	default:
		response.InternalError(w)
	}
}

// Routes returns the ledger router, mounted under the account path.
func (h *Handler) Routes(scopeTenantOrCustomer func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(scopeTenantOrCustomer)
	r.Post("/transactions", h.Post)
	r.Get("/transactions", h.List)
	r.Get("/balance", h.Balance)
	return r
}
