// Package access holds the tenant-scope authorization decision logic.
//
// The resolver is a pure function over an explicit Context struct so it can
// be unit-tested in complete isolation from the HTTP stack. Middleware
// adapters build the Context from JWT claims and route parameters.
package access

import "github.com/google/uuid"

// Role names carried in principal claims.
const (
	RolePlatformRoot = "platform_root"
	RoleTenantOwner  = "tenant_owner"
	RoleTenantStaff  = "tenant_staff"
	RoleCustomer     = "customer"
)

// Decision is the outcome of a scope evaluation.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Context carries everything a scope decision depends on. CallerTenantID and
// CallerCustomerID are nil when the principal has no such claim. Route ids
// are uuid.Nil when the route does not name them.
type Context struct {
	IsAuthenticated  bool
	CallerTenantID   *uuid.UUID
	CallerCustomerID *uuid.UUID
	Roles            []string
	RouteTenantID    uuid.UUID
	RouteCustomerID  uuid.UUID
	HostTenantID     uuid.UUID
}

func (c Context) hasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// The individual rules of the decision table, in priority order. Each rule
// answers "does this rule grant access"; the first granting rule wins and
// an unauthenticated caller is always denied before any rule runs.

// platformRoot: caller belongs to the host tenant and holds the
// platform-root role. Grants access regardless of the route tenant.
func platformRoot(c Context) bool {
	return c.CallerTenantID != nil &&
		c.HostTenantID != uuid.Nil &&
		*c.CallerTenantID == c.HostTenantID &&
		c.hasRole(RolePlatformRoot)
}

// sameTenant: tenant-scoped staff acting within their own tenant.
func sameTenant(c Context) bool {
	return c.CallerTenantID != nil &&
		c.RouteTenantID != uuid.Nil &&
		*c.CallerTenantID == c.RouteTenantID
}

// tenantOwner: caller holds the tenant-owner role and carries any non-nil
// tenant id. Deliberately does NOT compare against the route tenant; the
// upstream system behaved this way and the behavior is preserved verbatim.
// See DESIGN.md for the recorded decision.
func tenantOwner(c Context) bool {
	return c.hasRole(RoleTenantOwner) && c.CallerTenantID != nil
}

// sameCustomer: customer-role caller acting on their own customer record.
func sameCustomer(c Context) bool {
	return c.hasRole(RoleCustomer) &&
		c.CallerCustomerID != nil &&
		c.RouteCustomerID != uuid.Nil &&
		*c.CallerCustomerID == c.RouteCustomerID
}

// Policy is a named restriction of the decision table: an ordered subset of
// its rules. Policies share the rules rather than re-implementing them.
type Policy struct {
	Name  string
	rules []func(Context) bool
}

// Decide evaluates the policy for the given context.
func (p Policy) Decide(c Context) Decision {
	if !c.IsAuthenticated {
		return Deny
	}
	for _, rule := range p.rules {
		if rule(c) {
			return Allow
		}
	}
	return Deny
}

// TenantOrCustomerScope is the combined policy gating ledger operations:
// the full decision table.
var TenantOrCustomerScope = Policy{
	Name:  "tenant_or_customer",
	rules: []func(Context) bool{platformRoot, sameTenant, tenantOwner, sameCustomer},
}

// TenantScope admits platform root, same-tenant staff, and tenant owners.
var TenantScope = Policy{
	Name:  "tenant",
	rules: []func(Context) bool{platformRoot, sameTenant, tenantOwner},
}

// CustomerScope admits platform root and the customer acting on themselves.
var CustomerScope = Policy{
	Name:  "customer",
	rules: []func(Context) bool{platformRoot, sameCustomer},
}

// PlatformRootScope admits only the platform operator.
var PlatformRootScope = Policy{
	Name:  "platform_root",
	rules: []func(Context) bool{platformRoot},
}

// Decide evaluates the full decision table. Ledger boundary calls use this
// via TenantOrCustomerScope; it is exposed for callers that want the raw
// table semantics.
func Decide(c Context) Decision {
	return TenantOrCustomerScope.Decide(c)
}
