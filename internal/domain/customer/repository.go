package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines customer data access
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	GetByUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) (*Customer, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Customer, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates customer repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, tenant_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.TenantID, c.UserID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyLinked
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error) {
	var c Customer
	err := r.db.GetContext(ctx, &c, `
		SELECT * FROM customers WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetByUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) (*Customer, error) {
	var c Customer
	err := r.db.GetContext(ctx, &c, `
		SELECT * FROM customers WHERE user_id = $1 AND tenant_id = $2
	`, userID, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Customer, error) {
	customers := []*Customer{}
	err := r.db.SelectContext(ctx, &customers, `
		SELECT * FROM customers
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, tenantID, limit, offset)
	return customers, err
}
