package accounttype

import (
	"time"

	"github.com/google/uuid"
)

// DefaultName is the account type created for every tenant at onboarding.
const DefaultName = "Normal"

// AccountType is a tenant-defined category of balance.
type AccountType struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
