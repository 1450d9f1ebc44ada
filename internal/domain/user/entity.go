package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pointline/pointline-api/internal/access"
)

// User represents an authenticated principal (matches users table). A user
// belongs to at most one tenant; platform roots have no tenant binding.
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Roles        pq.StringArray `db:"roles"`
	TenantID     *uuid.UUID     `db:"tenant_id"`
	IsDisabled   bool           `db:"is_disabled"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsActive returns true if the user may log in.
func (u *User) IsActive() bool {
	return !u.IsDisabled
}

// ValidRoles returns the roles accepted at registration. Platform root is
// never self-assignable.
func ValidRoles() []string {
	return []string{access.RoleTenantOwner, access.RoleTenantStaff, access.RoleCustomer}
}

// IsValidRole checks if role is valid for registration
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}
