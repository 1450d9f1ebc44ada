package txtype

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service is the per-tenant transaction type registry.
type Service struct {
	repo Repository
}

// NewService creates transaction type service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields for an admin-defined transaction type.
type CreateInput struct {
	TenantID      uuid.UUID
	Slug          string
	Name          string
	Multiplier    int
	AllowNegative bool
}

// Create registers a new transaction type. The multiplier must be exactly
// -1 or +1; slugs are lower-cased before storage so lookups stay
// case-insensitive.
func (s *Service) Create(ctx context.Context, in CreateInput) (*TransactionType, error) {
	if in.Multiplier != 1 && in.Multiplier != -1 {
		return nil, ErrInvalidMultiplier
	}

	tt := &TransactionType{
		ID:            uuid.New(),
		TenantID:      in.TenantID,
		Slug:          NormalizeSlug(in.Slug),
		Name:          in.Name,
		Multiplier:    in.Multiplier,
		AllowNegative: in.AllowNegative,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Create(ctx, tt); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", tt.TenantID.String()).
		Str("slug", tt.Slug).
		Int("multiplier", tt.Multiplier).
		Bool("allow_negative", tt.AllowNegative).
		Msg("transaction type created")
	return tt, nil
}

// Resolve looks up a transaction type by tenant and slug.
func (s *Service) Resolve(ctx context.Context, tenantID uuid.UUID, slug string) (*TransactionType, error) {
	return s.repo.Resolve(ctx, tenantID, NormalizeSlug(slug))
}

// ListByTenant returns all transaction types registered for the tenant.
func (s *Service) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*TransactionType, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// NormalizeSlug lower-cases and trims a slug for tenant-unique comparison.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
