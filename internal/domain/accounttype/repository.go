package accounttype

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines account type data access
type Repository interface {
	Create(ctx context.Context, at *AccountType) error
	// CreateDefaultTx seeds the default account type inside the tenant
	// onboarding transaction.
	CreateDefaultTx(ctx context.Context, tx *sqlx.Tx, tenantID uuid.UUID) (uuid.UUID, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*AccountType, error)
	ExistsInTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*AccountType, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates account type repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const insertQuery = `
	INSERT INTO account_types (id, tenant_id, name, created_at)
	VALUES ($1, $2, $3, $4)
`

func (r *repository) Create(ctx context.Context, at *AccountType) error {
	_, err := r.db.ExecContext(ctx, insertQuery, at.ID, at.TenantID, at.Name, at.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *repository) CreateDefaultTx(ctx context.Context, tx *sqlx.Tx, tenantID uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	_, err := tx.ExecContext(ctx, insertQuery, id, tenantID, DefaultName, time.Now())
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*AccountType, error) {
	var at AccountType
	err := r.db.GetContext(ctx, &at, `
		SELECT * FROM account_types WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func (r *repository) ExistsInTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM account_types WHERE tenant_id = $1 AND id = $2)
	`, tenantID, id)
	return exists, err
}

func (r *repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*AccountType, error) {
	types := []*AccountType{}
	err := r.db.SelectContext(ctx, &types, `
		SELECT * FROM account_types WHERE tenant_id = $1 ORDER BY created_at
	`, tenantID)
	return types, err
}
