package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrZeroAmount         = errors.New("amount must be non-zero")
	ErrReasonTooLong      = errors.New("reason exceeds maximum length")
	ErrUnknownReference   = errors.New("reference does not exist in tenant")
	ErrNegativeNotAllowed = errors.New("negative amounts not allowed for this transaction type")

	// ErrNoAccount covers both "no account exists and the first entry
	// would be a net debit" and "account type unknown for tenant".
	ErrNoAccount = errors.New("no account found for customer/tenant/type")

	// ErrTransactionNotFound is returned by transaction lookups.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrVersionConflict signals that the account's optimistic version
	// changed between read and write. Retried internally; callers only
	// see it once the retry budget is exhausted.
	ErrVersionConflict = errors.New("account version conflict")
)

// InsufficientBalanceError is returned when an entry would drive the
// balance negative. It carries the balance at decision time and the
// absolute requested amount; no state was mutated.
type InsufficientBalanceError struct {
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %s, requested %s", e.Balance, e.Requested)
}
