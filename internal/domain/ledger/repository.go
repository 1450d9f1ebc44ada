package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

// Repository defines ledger data access. Apply is the single write path:
// one storage transaction covering the balance change and the new entry.
type Repository interface {
	GetAccount(ctx context.Context, tenantID, customerID, accountTypeID uuid.UUID) (*Account, error)
	// Apply persists the account mutation and the transaction row
	// atomically. For existing accounts the update is guarded by the
	// version read earlier; a changed version yields ErrVersionConflict
	// and nothing is written. Newly created accounts that lose a
	// creation race also yield ErrVersionConflict so the caller can
	// retry against the now-existing row.
	Apply(ctx context.Context, acct *Account, txn *Transaction, created bool) error
	GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, tenantID, customerID, accountTypeID uuid.UUID, limit, offset int) ([]Transaction, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates ledger repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAccount(ctx context.Context, tenantID, customerID, accountTypeID uuid.UUID) (*Account, error) {
	var acct Account
	err := r.db.GetContext(ctx, &acct, `
		SELECT tenant_id, customer_id, account_type_id, balance, version, created_at, updated_at
		FROM accounts
		WHERE tenant_id = $1 AND customer_id = $2 AND account_type_id = $3
	`, tenantID, customerID, accountTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAccount
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *repository) Apply(ctx context.Context, acct *Account, txn *Transaction, created bool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if created {
		if err := r.insertAccount(ctx, tx, acct); err != nil {
			return err
		}
	} else {
		if err := r.updateAccount(ctx, tx, acct); err != nil {
			return err
		}
	}

	if err := r.insertTransaction(ctx, tx, txn); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) insertAccount(ctx context.Context, tx *sqlx.Tx, acct *Account) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (tenant_id, customer_id, account_type_id, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 1, $5, $6)
	`, acct.TenantID, acct.CustomerID, acct.AccountTypeID, acct.Balance, acct.CreatedAt, acct.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Lost a lazy-creation race; the account exists now.
			return ErrVersionConflict
		}
		return err
	}
	return nil
}

func (r *repository) updateAccount(ctx context.Context, tx *sqlx.Tx, acct *Account) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = $4, version = version + 1, updated_at = now()
		WHERE tenant_id = $1 AND customer_id = $2 AND account_type_id = $3 AND version = $5
	`, acct.TenantID, acct.CustomerID, acct.AccountTypeID, acct.Balance, acct.Version)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *repository) insertTransaction(ctx context.Context, tx *sqlx.Tx, txn *Transaction) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_transactions
			(id, tenant_id, customer_id, account_type_id, amount, transaction_type_id,
			 reason, reference_id, idempotency_key, occurred_at, created_at, performed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, txn.ID, txn.TenantID, txn.CustomerID, txn.AccountTypeID, txn.Amount, txn.TransactionTypeID,
		txn.Reason, txn.ReferenceID, txn.IdempotencyKey, txn.OccurredAt, txn.CreatedAt, txn.PerformedBy)
	return err
}

func (r *repository) GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error) {
	var txn Transaction
	err := r.db.GetContext(ctx, &txn, `
		SELECT * FROM ledger_transactions WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *repository) ListTransactions(ctx context.Context, tenantID, customerID, accountTypeID uuid.UUID, limit, offset int) ([]Transaction, error) {
	txns := []Transaction{}
	err := r.db.SelectContext(ctx, &txns, `
		SELECT * FROM ledger_transactions
		WHERE tenant_id = $1 AND customer_id = $2 AND account_type_id = $3
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5
	`, tenantID, customerID, accountTypeID, limit, offset)
	return txns, err
}
