package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer links a platform principal to a tenant's loyalty program. One
// user can hold customer records across multiple tenants.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
