package txtype

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines transaction type data access
type Repository interface {
	Create(ctx context.Context, tt *TransactionType) error
	// SeedDefaultsTx creates the default earn/redeem/adjust types inside
	// the tenant onboarding transaction.
	SeedDefaultsTx(ctx context.Context, tx *sqlx.Tx, tenantID uuid.UUID) error
	Resolve(ctx context.Context, tenantID uuid.UUID, slug string) (*TransactionType, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*TransactionType, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates transaction type repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const insertQuery = `
	INSERT INTO transaction_types (id, tenant_id, slug, name, multiplier, allow_negative, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *repository) Create(ctx context.Context, tt *TransactionType) error {
	_, err := r.db.ExecContext(ctx, insertQuery,
		tt.ID, tt.TenantID, tt.Slug, tt.Name, tt.Multiplier, tt.AllowNegative, tt.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *repository) SeedDefaultsTx(ctx context.Context, tx *sqlx.Tx, tenantID uuid.UUID) error {
	now := time.Now()
	defaults := []TransactionType{
		{ID: uuid.New(), TenantID: tenantID, Slug: SlugEarn, Name: "Earn", Multiplier: 1, AllowNegative: false, CreatedAt: now},
		{ID: uuid.New(), TenantID: tenantID, Slug: SlugRedeem, Name: "Redeem", Multiplier: -1, AllowNegative: false, CreatedAt: now},
		{ID: uuid.New(), TenantID: tenantID, Slug: SlugAdjust, Name: "Adjust", Multiplier: 1, AllowNegative: true, CreatedAt: now},
	}

	for _, tt := range defaults {
		if _, err := tx.ExecContext(ctx, insertQuery,
			tt.ID, tt.TenantID, tt.Slug, tt.Name, tt.Multiplier, tt.AllowNegative, tt.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Resolve(ctx context.Context, tenantID uuid.UUID, slug string) (*TransactionType, error) {
	var tt TransactionType
	err := r.db.GetContext(ctx, &tt, `
		SELECT * FROM transaction_types WHERE tenant_id = $1 AND slug = $2
	`, tenantID, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*TransactionType, error) {
	types := []*TransactionType{}
	err := r.db.SelectContext(ctx, &types, `
		SELECT * FROM transaction_types WHERE tenant_id = $1 ORDER BY created_at
	`, tenantID)
	return types, err
}
