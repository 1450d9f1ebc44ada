package txtype

import (
	"time"

	"github.com/google/uuid"
)

// Default slugs seeded for every tenant at onboarding.
const (
	SlugEarn   = "earn"
	SlugRedeem = "redeem"
	SlugAdjust = "adjust"
)

// TransactionType maps a tenant-scoped slug to a sign multiplier and a
// negative-amount policy. Multiplier is exactly +1 or -1.
type TransactionType struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TenantID      uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Slug          string    `db:"slug" json:"slug"`
	Name          string    `db:"name" json:"name"`
	Multiplier    int       `db:"multiplier" json:"multiplier"`
	AllowNegative bool      `db:"allow_negative" json:"allow_negative"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
