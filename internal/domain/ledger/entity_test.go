package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestAccount(balance string) *Account {
	a := NewAccount(uuid.New(), uuid.New(), uuid.New())
	a.Balance = dec(balance)
	return a
}

func TestProcessTransactionCredit(t *testing.T) {
	a := newTestAccount("0")

	balance, txn, err := a.ProcessTransaction(EntryParams{
		Amount:            dec("100"),
		TransactionTypeID: uuid.New(),
		PerformedBy:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(dec("100")) {
		t.Errorf("balance = %s, want 100", balance)
	}
	if !txn.Amount.Equal(dec("100")) {
		t.Errorf("transaction amount = %s, want 100", txn.Amount)
	}
	if txn.TenantID != a.TenantID || txn.CustomerID != a.CustomerID || txn.AccountTypeID != a.AccountTypeID {
		t.Error("transaction did not inherit account identity")
	}
	if len(a.Transactions()) != 1 {
		t.Fatalf("transactions appended = %d, want 1", len(a.Transactions()))
	}
}

func TestProcessTransactionDebitWithinBalance(t *testing.T) {
	a := newTestAccount("100")

	balance, _, err := a.ProcessTransaction(EntryParams{Amount: dec("-40")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(dec("60")) {
		t.Errorf("balance = %s, want 60", balance)
	}
}

func TestProcessTransactionExactDrain(t *testing.T) {
	a := newTestAccount("50")

	balance, _, err := a.ProcessTransaction(EntryParams{Amount: dec("-50")})
	if err != nil {
		t.Fatalf("draining to exactly zero must be allowed: %v", err)
	}
	if !balance.IsZero() {
		t.Errorf("balance = %s, want 0", balance)
	}
}

func TestProcessTransactionInsufficientBalance(t *testing.T) {
	a := newTestAccount("60")

	_, txn, err := a.ProcessTransaction(EntryParams{Amount: dec("-1000")})
	if txn != nil {
		t.Error("no transaction should be returned on failure")
	}

	var insufficient *InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want *InsufficientBalanceError", err)
	}
	if !insufficient.Balance.Equal(dec("60")) {
		t.Errorf("error balance = %s, want 60", insufficient.Balance)
	}
	if !insufficient.Requested.Equal(dec("1000")) {
		t.Errorf("error requested = %s, want 1000 (absolute)", insufficient.Requested)
	}

	if !a.Balance.Equal(dec("60")) {
		t.Errorf("balance mutated on failure: %s", a.Balance)
	}
	if len(a.Transactions()) != 0 {
		t.Errorf("transaction appended on failure")
	}
}

func TestProcessTransactionOccurredAtDefault(t *testing.T) {
	a := newTestAccount("0")

	before := time.Now()
	_, txn, err := a.ProcessTransaction(EntryParams{Amount: dec("1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.OccurredAt.Before(before) {
		t.Errorf("occurred_at not defaulted to now: %v", txn.OccurredAt)
	}

	explicit := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_, txn, err = a.ProcessTransaction(EntryParams{Amount: dec("1"), OccurredAt: explicit})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !txn.OccurredAt.Equal(explicit) {
		t.Errorf("occurred_at = %v, want %v", txn.OccurredAt, explicit)
	}
}

func TestProcessTransactionSequence(t *testing.T) {
	a := newTestAccount("0")

	steps := []struct {
		amount string
		want   string
	}{
		{"100", "100"},
		{"-40", "60"},
		{"25.5", "85.5"},
		{"-85.5", "0"},
	}
	for _, step := range steps {
		balance, _, err := a.ProcessTransaction(EntryParams{Amount: dec(step.amount)})
		if err != nil {
			t.Fatalf("amount %s: unexpected error: %v", step.amount, err)
		}
		if !balance.Equal(dec(step.want)) {
			t.Errorf("after %s: balance = %s, want %s", step.amount, balance, step.want)
		}
	}
	if len(a.Transactions()) != len(steps) {
		t.Errorf("transactions = %d, want %d", len(a.Transactions()), len(steps))
	}
}
