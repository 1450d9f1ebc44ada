package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the per-(tenant, customer, account type) balance bucket. The
// three ids form its composite identity. Balance changes only through
// ProcessTransaction; Version is the optimistic concurrency token compared
// at write time by the repository.
type Account struct {
	TenantID      uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	CustomerID    uuid.UUID       `db:"customer_id" json:"customer_id"`
	AccountTypeID uuid.UUID       `db:"account_type_id" json:"account_type_id"`
	Balance       decimal.Decimal `db:"balance" json:"balance"`
	Version       int64           `db:"version" json:"-"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`

	transactions []Transaction
}

// NewAccount returns a zero-balance account for lazy creation.
func NewAccount(tenantID, customerID, accountTypeID uuid.UUID) *Account {
	now := time.Now()
	return &Account{
		TenantID:      tenantID,
		CustomerID:    customerID,
		AccountTypeID: accountTypeID,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Transactions returns the entries appended in this aggregate instance.
func (a *Account) Transactions() []Transaction {
	return a.transactions
}

// Transaction is an immutable signed ledger entry. Amount already carries
// the transaction type's sign multiplier.
type Transaction struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	TenantID          uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	CustomerID        uuid.UUID       `db:"customer_id" json:"customer_id"`
	AccountTypeID     uuid.UUID       `db:"account_type_id" json:"account_type_id"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	TransactionTypeID uuid.UUID       `db:"transaction_type_id" json:"transaction_type_id"`
	Reason            *string         `db:"reason" json:"reason,omitempty"`
	ReferenceID       *uuid.UUID      `db:"reference_id" json:"reference_id,omitempty"`
	IdempotencyKey    *string         `db:"idempotency_key" json:"idempotency_key,omitempty"`
	OccurredAt        time.Time       `db:"occurred_at" json:"occurred_at"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	PerformedBy       uuid.UUID       `db:"performed_by" json:"performed_by"`
}

// EntryParams carries everything needed to append one ledger entry.
// Amount is the final signed amount, multiplier already applied.
type EntryParams struct {
	Amount            decimal.Decimal
	TransactionTypeID uuid.UUID
	Reason            *string
	ReferenceID       *uuid.UUID
	IdempotencyKey    *string
	PerformedBy       uuid.UUID
	OccurredAt        time.Time
}

// ProcessTransaction applies one signed entry to the account.
//
// The non-negative-balance precondition is checked before any mutation: on
// failure the balance and the transaction list are untouched and an
// *InsufficientBalanceError carrying the current balance and the absolute
// requested amount is returned. On success the balance is updated and the
// new immutable transaction is appended and returned together with the new
// balance. The aggregate never touches storage; persistence is the
// orchestrator's concern.
func (a *Account) ProcessTransaction(p EntryParams) (decimal.Decimal, *Transaction, error) {
	next := a.Balance.Add(p.Amount)
	if next.IsNegative() {
		return decimal.Zero, nil, &InsufficientBalanceError{
			Balance:   a.Balance,
			Requested: p.Amount.Abs(),
		}
	}

	occurredAt := p.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	txn := Transaction{
		ID:                uuid.New(),
		TenantID:          a.TenantID,
		CustomerID:        a.CustomerID,
		AccountTypeID:     a.AccountTypeID,
		Amount:            p.Amount,
		TransactionTypeID: p.TransactionTypeID,
		Reason:            p.Reason,
		ReferenceID:       p.ReferenceID,
		IdempotencyKey:    p.IdempotencyKey,
		OccurredAt:        occurredAt,
		CreatedAt:         time.Now(),
		PerformedBy:       p.PerformedBy,
	}

	a.Balance = next
	a.UpdatedAt = txn.CreatedAt
	a.transactions = append(a.transactions, txn)

	return a.Balance, &txn, nil
}
