package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pointline/pointline-api/internal/domain/tenant"
)

// PostTransactionRequest is the posting payload. Amount is a decimal string
// so precision survives the wire.
type PostTransactionRequest struct {
	Type           string  `json:"type" validate:"required,max=60"`
	Amount         string  `json:"amount" validate:"required"`
	Reason         string  `json:"reason" validate:"omitempty,max=255"`
	ReferenceID    *string `json:"reference_id" validate:"omitempty,uuid"`
	IdempotencyKey *string `json:"idempotency_key" validate:"omitempty,max=128"`
	OccurredAt     *string `json:"occurred_at" validate:"omitempty"`
}

// PostTransactionResponse mirrors the committed state after a posting.
type PostTransactionResponse struct {
	Balance     decimal.Decimal `json:"balance"`
	Transaction *Transaction    `json:"transaction"`
	Tenant      tenant.Summary  `json:"tenant"`
}

// BalanceResponse is the read-side balance view.
type BalanceResponse struct {
	TenantID      uuid.UUID       `json:"tenant_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	AccountTypeID uuid.UUID       `json:"account_type_id"`
	Balance       decimal.Decimal `json:"balance"`
}

func (req *PostTransactionRequest) toInput(tenantID, customerID, accountTypeID, performedBy uuid.UUID) (PostTransactionInput, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return PostTransactionInput{}, err
	}

	in := PostTransactionInput{
		TenantID:       tenantID,
		CustomerID:     customerID,
		AccountTypeID:  accountTypeID,
		Slug:           req.Type,
		Amount:         amount,
		Reason:         req.Reason,
		IdempotencyKey: req.IdempotencyKey,
		PerformedBy:    performedBy,
	}
	if req.ReferenceID != nil {
		id, err := uuid.Parse(*req.ReferenceID)
		if err != nil {
			return PostTransactionInput{}, err
		}
		in.ReferenceID = &id
	}
	if req.OccurredAt != nil {
		t, err := time.Parse(time.RFC3339, *req.OccurredAt)
		if err != nil {
			return PostTransactionInput{}, err
		}
		in.OccurredAt = &t
	}
	return in, nil
}
