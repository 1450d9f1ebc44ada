package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pointline/pointline-api/internal/domain/tenant"
	"github.com/pointline/pointline-api/internal/domain/txtype"
	"github.com/pointline/pointline-api/internal/pkg/retry"
)

const maxReasonLength = 255

// TenantResolver resolves tenants for ledger orchestration.
type TenantResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
}

// CustomerChecker verifies that the customer exists within the tenant.
type CustomerChecker interface {
	Exists(ctx context.Context, tenantID, customerID uuid.UUID) error
}

// TypeResolver resolves a transaction type by tenant and slug.
type TypeResolver interface {
	Resolve(ctx context.Context, tenantID uuid.UUID, slug string) (*txtype.TransactionType, error)
}

// AccountTypeChecker verifies that the account type belongs to the tenant.
type AccountTypeChecker interface {
	ExistsInTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

// Service orchestrates ledger mutations: it resolves the collaborators,
// applies the aggregate mutation, and commits with bounded retry on
// optimistic write conflicts.
type Service struct {
	repo         Repository
	tenants      TenantResolver
	customers    CustomerChecker
	types        TypeResolver
	accountTypes AccountTypeChecker

	maxAttempts int
	retryDelay  time.Duration
}

// NewService creates the ledger service. maxAttempts bounds the retry loop
// for write conflicts; retryDelay is the fixed pause between attempts.
func NewService(repo Repository, tenants TenantResolver, customers CustomerChecker, types TypeResolver, accountTypes AccountTypeChecker, maxAttempts int, retryDelay time.Duration) *Service {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &Service{
		repo:         repo,
		tenants:      tenants,
		customers:    customers,
		types:        types,
		accountTypes: accountTypes,
		maxAttempts:  maxAttempts,
		retryDelay:   retryDelay,
	}
}

// PostTransactionInput carries one ledger posting request.
type PostTransactionInput struct {
	TenantID       uuid.UUID
	CustomerID     uuid.UUID
	AccountTypeID  uuid.UUID
	Slug           string
	Amount         decimal.Decimal
	Reason         string
	ReferenceID    *uuid.UUID
	IdempotencyKey *string
	OccurredAt     *time.Time
	PerformedBy    uuid.UUID
}

// PostTransactionResult is returned on a committed posting.
type PostTransactionResult struct {
	Balance     decimal.Decimal
	Transaction *Transaction
	Tenant      tenant.Summary
}

// PostTransaction runs the full posting pipeline: validate, resolve the
// transaction type and apply its sign rules, resolve tenant and customer,
// lazily create the account when allowed, apply the aggregate mutation and
// commit atomically. The read-modify-write portion is retried on write
// conflicts with fresh reads per attempt; validation, lookup, and balance
// errors are never retried.
func (s *Service) PostTransaction(ctx context.Context, in PostTransactionInput) (*PostTransactionResult, error) {
	if in.Amount.IsZero() {
		return nil, ErrZeroAmount
	}
	if len(in.Reason) > maxReasonLength {
		return nil, ErrReasonTooLong
	}
	if in.ReferenceID != nil {
		if _, err := s.repo.GetTransaction(ctx, in.TenantID, *in.ReferenceID); err != nil {
			if errors.Is(err, ErrTransactionNotFound) {
				return nil, ErrUnknownReference
			}
			return nil, err
		}
	}

	var result *PostTransactionResult
	err := retry.Do(ctx, s.maxAttempts, s.retryDelay, isConflict, func(ctx context.Context) error {
		r, err := s.attempt(ctx, in)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			log.Warn().
				Str("tenant_id", in.TenantID.String()).
				Str("customer_id", in.CustomerID.String()).
				Int("attempts", s.maxAttempts).
				Msg("ledger posting gave up after repeated write conflicts")
		}
		return nil, err
	}

	log.Info().
		Str("tenant_id", in.TenantID.String()).
		Str("customer_id", in.CustomerID.String()).
		Str("account_type_id", in.AccountTypeID.String()).
		Str("slug", in.Slug).
		Str("amount", result.Transaction.Amount.String()).
		Str("balance", result.Balance.String()).
		Msg("ledger transaction posted")
	return result, nil
}

// attempt is one full read-modify-write pass. Every attempt re-reads
// tenant, customer, and account so a conflicting writer's result is
// observed instead of compounded.
func (s *Service) attempt(ctx context.Context, in PostTransactionInput) (*PostTransactionResult, error) {
	tt, err := s.types.Resolve(ctx, in.TenantID, in.Slug)
	if err != nil {
		return nil, err
	}
	if !tt.AllowNegative && in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativeNotAllowed, tt.Slug)
	}

	t, err := s.tenants.GetByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive() {
		return nil, tenant.ErrInactive
	}

	if err := s.customers.Exists(ctx, in.TenantID, in.CustomerID); err != nil {
		return nil, err
	}

	finalAmount := in.Amount.Mul(decimal.NewFromInt(int64(tt.Multiplier)))

	acct, err := s.repo.GetAccount(ctx, in.TenantID, in.CustomerID, in.AccountTypeID)
	created := false
	if err != nil {
		if !errors.Is(err, ErrNoAccount) {
			return nil, err
		}
		// Lazy creation: only for a net credit against a known type.
		// A first transaction cannot be a net debit.
		if finalAmount.Sign() <= 0 {
			return nil, ErrNoAccount
		}
		exists, err := s.accountTypes.ExistsInTenant(ctx, in.TenantID, in.AccountTypeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNoAccount
		}
		acct = NewAccount(in.TenantID, in.CustomerID, in.AccountTypeID)
		created = true
	}

	var occurredAt time.Time
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}

	balance, txn, err := acct.ProcessTransaction(EntryParams{
		Amount:            finalAmount,
		TransactionTypeID: tt.ID,
		Reason:            optString(in.Reason),
		ReferenceID:       in.ReferenceID,
		IdempotencyKey:    in.IdempotencyKey,
		PerformedBy:       in.PerformedBy,
		OccurredAt:        occurredAt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Apply(ctx, acct, txn, created); err != nil {
		return nil, err
	}

	return &PostTransactionResult{
		Balance:     balance,
		Transaction: txn,
		Tenant:      t.Summary(),
	}, nil
}

// GetBalance returns the account balance, zero when no account exists yet.
func (s *Service) GetBalance(ctx context.Context, tenantID, customerID, accountTypeID uuid.UUID) (decimal.Decimal, error) {
	acct, err := s.repo.GetAccount(ctx, tenantID, customerID, accountTypeID)
	if errors.Is(err, ErrNoAccount) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

// ListTransactions returns the account's history, newest first.
func (s *Service) ListTransactions(ctx context.Context, tenantID, customerID, accountTypeID uuid.UUID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListTransactions(ctx, tenantID, customerID, accountTypeID, limit, offset)
}

func isConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
