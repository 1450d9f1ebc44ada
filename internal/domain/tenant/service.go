package tenant

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AccountTypeSeeder creates the default account type during onboarding,
// inside the onboarding transaction.
type AccountTypeSeeder interface {
	CreateDefaultTx(ctx context.Context, tx *sqlx.Tx, tenantID uuid.UUID) (uuid.UUID, error)
}

// TransactionTypeSeeder creates the default transaction types (earn,
// redeem, adjust) during onboarding, inside the onboarding transaction.
type TransactionTypeSeeder interface {
	SeedDefaultsTx(ctx context.Context, tx *sqlx.Tx, tenantID uuid.UUID) error
}

// Service handles tenant onboarding and lifecycle
type Service struct {
	repo         Repository
	accountTypes AccountTypeSeeder
	txTypes      TransactionTypeSeeder
	cache        *Cache
}

// NewService creates tenant service
func NewService(repo Repository, accountTypes AccountTypeSeeder, txTypes TransactionTypeSeeder, cache *Cache) *Service {
	return &Service{repo: repo, accountTypes: accountTypes, txTypes: txTypes, cache: cache}
}

// OnboardInput carries the fields required to onboard a tenant.
type OnboardInput struct {
	Name          string
	Slug          string
	PointsPerUnit *decimal.Decimal
	ExpiryDays    *int64
}

// Onboard creates a new active tenant together with its default "Normal"
// account type and the default transaction types, all in one transaction.
func (s *Service) Onboard(ctx context.Context, in OnboardInput) (*Tenant, error) {
	now := time.Now()
	t := &Tenant{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		Slug:      strings.ToLower(strings.TrimSpace(in.Slug)),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.PointsPerUnit != nil {
		t.PointsPerUnit = decimal.NullDecimal{Decimal: *in.PointsPerUnit, Valid: true}
	}
	if in.ExpiryDays != nil {
		t.ExpiryDays = sql.NullInt64{Int64: *in.ExpiryDays, Valid: true}
	}

	err := s.repo.Onboard(ctx, t, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := s.accountTypes.CreateDefaultTx(ctx, tx, t.ID); err != nil {
			return err
		}
		return s.txTypes.SeedDefaultsTx(ctx, tx, t.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", t.ID.String()).
		Str("slug", t.Slug).
		Msg("tenant onboarded")
	return t, nil
}

// GetByID returns the tenant, serving from cache when possible.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	if t, ok := s.cache.Get(ctx, id); ok {
		return t, nil
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, t)
	return t, nil
}

// GetBySlug returns the tenant by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	return s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

// List returns tenants, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Tenant, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, limit, offset)
}

// Activate marks the tenant active.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, StatusActive)
}

// Deactivate marks the tenant inactive; ledger operations against it are
// rejected until it is reactivated.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, StatusInactive)
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)

	log.Info().
		Str("tenant_id", id.String()).
		Str("status", string(status)).
		Msg("tenant status changed")
	return nil
}
