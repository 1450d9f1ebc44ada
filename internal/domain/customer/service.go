package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles customer enrollment
type Service struct {
	repo Repository
}

// NewService creates customer service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Enroll creates a customer record linking the user to the tenant.
func (s *Service) Enroll(ctx context.Context, tenantID, userID uuid.UUID) (*Customer, error) {
	now := time.Now()
	c := &Customer{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().
		Str("customer_id", c.ID.String()).
		Str("tenant_id", tenantID.String()).
		Str("user_id", userID.String()).
		Msg("customer enrolled")
	return c, nil
}

// GetByID returns a customer within the tenant scope.
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// Exists reports whether the customer is enrolled in the tenant.
func (s *Service) Exists(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := s.repo.GetByID(ctx, tenantID, id)
	return err
}

// ListByTenant returns the tenant's customers, newest first.
func (s *Service) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByTenant(ctx, tenantID, limit, offset)
}
