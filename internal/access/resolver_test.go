package access

import (
	"testing"

	"github.com/google/uuid"
)

var (
	hostTenant  = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	tenantOne   = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	tenantTwo   = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
	customerOne = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	customerTwo = uuid.MustParse("00000000-0000-0000-0000-0000000000c2")
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want Decision
	}{
		{
			name: "unauthenticated denied",
			ctx: Context{
				IsAuthenticated: false,
				CallerTenantID:  ptr(tenantOne),
				RouteTenantID:   tenantOne,
				HostTenantID:    hostTenant,
			},
			want: Deny,
		},
		{
			name: "platform root in host tenant, any route tenant",
			ctx: Context{
				IsAuthenticated: true,
				CallerTenantID:  ptr(hostTenant),
				Roles:           []string{RolePlatformRoot},
				RouteTenantID:   tenantTwo,
				HostTenantID:    hostTenant,
			},
			want: Allow,
		},
		{
			name: "platform root role outside host tenant denied",
			ctx: Context{
				IsAuthenticated: true,
				CallerTenantID:  ptr(tenantOne),
				Roles:           []string{RolePlatformRoot},
				RouteTenantID:   tenantTwo,
				HostTenantID:    hostTenant,
			},
			want: Deny,
		},
		{
			name: "staff in own tenant",
			ctx: Context{
				IsAuthenticated: true,
				CallerTenantID:  ptr(tenantOne),
				Roles:           []string{RoleTenantStaff},
				RouteTenantID:   tenantOne,
				HostTenantID:    hostTenant,
			},
			want: Allow,
		},
		{
			name: "staff in foreign tenant denied",
			ctx: Context{
				IsAuthenticated: true,
				CallerTenantID:  ptr(tenantOne),
				Roles:           []string{RoleTenantStaff},
				RouteTenantID:   tenantTwo,
				HostTenantID:    hostTenant,
			},
			want: Deny,
		},
		{
			// Preserved upstream behavior: the owner rule never compares
			// against the route tenant.
			name: "tenant owner with any tenant id allowed on foreign route",
			ctx: Context{
				IsAuthenticated: true,
				CallerTenantID:  ptr(tenantOne),
				Roles:           []string{RoleTenantOwner},
				RouteTenantID:   tenantTwo,
				HostTenantID:    hostTenant,
			},
			want: Allow,
		},
		{
			name: "tenant owner without tenant id denied",
			ctx: Context{
				IsAuthenticated: true,
				Roles:           []string{RoleTenantOwner},
				RouteTenantID:   tenantTwo,
				HostTenantID:    hostTenant,
			},
			want: Deny,
		},
		{
			name: "customer acting on own record",
			ctx: Context{
				IsAuthenticated:  true,
				CallerCustomerID: ptr(customerOne),
				Roles:            []string{RoleCustomer},
				RouteTenantID:    tenantOne,
				RouteCustomerID:  customerOne,
				HostTenantID:     hostTenant,
			},
			want: Allow,
		},
		{
			name: "customer acting on another customer denied",
			ctx: Context{
				IsAuthenticated:  true,
				CallerCustomerID: ptr(customerOne),
				Roles:            []string{RoleCustomer},
				RouteTenantID:    tenantOne,
				RouteCustomerID:  customerTwo,
				HostTenantID:     hostTenant,
			},
			want: Deny,
		},
		{
			name: "no matching rule denied",
			ctx: Context{
				IsAuthenticated: true,
				RouteTenantID:   tenantOne,
				HostTenantID:    hostTenant,
			},
			want: Deny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.ctx); got != tt.want {
				t.Fatalf("Decide() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPolicyRestrictions(t *testing.T) {
	customerCtx := Context{
		IsAuthenticated:  true,
		CallerCustomerID: ptr(customerOne),
		Roles:            []string{RoleCustomer},
		RouteTenantID:    tenantOne,
		RouteCustomerID:  customerOne,
		HostTenantID:     hostTenant,
	}
	staffCtx := Context{
		IsAuthenticated: true,
		CallerTenantID:  ptr(tenantOne),
		Roles:           []string{RoleTenantStaff},
		RouteTenantID:   tenantOne,
		HostTenantID:    hostTenant,
	}
	rootCtx := Context{
		IsAuthenticated: true,
		CallerTenantID:  ptr(hostTenant),
		Roles:           []string{RolePlatformRoot},
		RouteTenantID:   tenantOne,
		HostTenantID:    hostTenant,
	}

	// Customer passes the combined and customer policies but not tenant-only.
	if TenantOrCustomerScope.Decide(customerCtx) != Allow {
		t.Fatal("combined scope should admit the customer")
	}
	if CustomerScope.Decide(customerCtx) != Allow {
		t.Fatal("customer scope should admit the customer")
	}
	if TenantScope.Decide(customerCtx) != Deny {
		t.Fatal("tenant scope should deny a plain customer")
	}
	if PlatformRootScope.Decide(customerCtx) != Deny {
		t.Fatal("platform-root scope should deny a plain customer")
	}

	// Staff passes tenant scopes but not customer-only.
	if TenantScope.Decide(staffCtx) != Allow {
		t.Fatal("tenant scope should admit same-tenant staff")
	}
	if CustomerScope.Decide(staffCtx) != Deny {
		t.Fatal("customer scope should deny staff without a customer claim")
	}

	// Platform root passes everything.
	for _, p := range []Policy{TenantOrCustomerScope, TenantScope, CustomerScope, PlatformRootScope} {
		if p.Decide(rootCtx) != Allow {
			t.Fatalf("%s scope should admit platform root", p.Name)
		}
	}
}
