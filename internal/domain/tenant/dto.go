package tenant

import (
	"time"

	"github.com/shopspring/decimal"
)

// OnboardRequest is the payload for tenant onboarding.
type OnboardRequest struct {
	Name          string           `json:"name" validate:"required,min=2,max=120"`
	Slug          string           `json:"slug" validate:"required,slug,max=60"`
	PointsPerUnit *decimal.Decimal `json:"points_per_unit,omitempty"`
	ExpiryDays    *int64           `json:"expiry_days,omitempty" validate:"omitempty,gte=1"`
}

// TenantResponse is the API representation of a tenant.
type TenantResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Status        string           `json:"status"`
	PointsPerUnit *decimal.Decimal `json:"points_per_unit,omitempty"`
	ExpiryDays    *int64           `json:"expiry_days,omitempty"`
	CreatedAt     string           `json:"created_at"`
}

// ToResponse converts the entity to its API shape.
func ToResponse(t *Tenant) TenantResponse {
	resp := TenantResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Slug:      t.Slug,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.PointsPerUnit.Valid {
		v := t.PointsPerUnit.Decimal
		resp.PointsPerUnit = &v
	}
	if t.ExpiryDays.Valid {
		v := t.ExpiryDays.Int64
		resp.ExpiryDays = &v
	}
	return resp
}
