package tenant

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents tenant lifecycle state (matches tenant_status enum)
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Tenant represents an onboarded organization running its own loyalty
// program. Tenants are deactivated by admin action, never hard-deleted.
type Tenant struct {
	ID     uuid.UUID `db:"id" json:"id"`
	Name   string    `db:"name" json:"name"`
	Slug   string    `db:"slug" json:"slug"`
	Status Status    `db:"status" json:"status"`

	// Program settings
	PointsPerUnit decimal.NullDecimal `db:"points_per_unit" json:"points_per_unit,omitempty"`
	ExpiryDays    sql.NullInt64       `db:"expiry_days" json:"expiry_days,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Summary is the compact tenant representation returned alongside ledger
// results.
type Summary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Summary returns the compact representation of the tenant.
func (t *Tenant) Summary() Summary {
	return Summary{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

// IsActive returns true if the tenant can accept ledger operations.
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}
