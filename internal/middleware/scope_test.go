package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pointline/pointline-api/internal/access"
	"github.com/pointline/pointline-api/internal/pkg/jwt"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func requestWithClaims(t *testing.T, path string, claims *jwt.Claims) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, claims))
	}
	return req
}

func serveScoped(t *testing.T, policy access.Policy, hostTenantID uuid.UUID, routePattern, path string, claims *jwt.Claims) (*httptest.ResponseRecorder, *bool) {
	t.Helper()
	handler, called := okHandler()

	r := chi.NewRouter()
	r.With(Scope(policy, hostTenantID)).Get(routePattern, handler.ServeHTTP)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, requestWithClaims(t, path, claims))
	return rec, called
}

func TestScopeAllowsSameTenantStaff(t *testing.T) {
	tenantID := uuid.New()
	claims := &jwt.Claims{
		UserID:   uuid.New(),
		TenantID: &tenantID,
		Roles:    []string{access.RoleTenantStaff},
	}

	rec, called := serveScoped(t, access.TenantScope, uuid.New(),
		"/tenants/{tenantID}", "/tenants/"+tenantID.String(), claims)

	if rec.Code != http.StatusOK || !*called {
		t.Fatalf("status = %d, handler called = %v; want 200 and called", rec.Code, *called)
	}
}

func TestScopeDeniesForeignTenantStaff(t *testing.T) {
	callerTenant := uuid.New()
	claims := &jwt.Claims{
		UserID:   uuid.New(),
		TenantID: &callerTenant,
		Roles:    []string{access.RoleTenantStaff},
	}

	rec, called := serveScoped(t, access.TenantScope, uuid.New(),
		"/tenants/{tenantID}", "/tenants/"+uuid.New().String(), claims)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if *called {
		t.Error("handler must not run on deny")
	}
}

func TestScopeDeniesAnonymous(t *testing.T) {
	rec, called := serveScoped(t, access.TenantScope, uuid.New(),
		"/tenants/{tenantID}", "/tenants/"+uuid.New().String(), nil)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if *called {
		t.Error("handler must not run for anonymous callers")
	}
}

func TestScopeAllowsPlatformRootAnywhere(t *testing.T) {
	hostTenant := uuid.New()
	claims := &jwt.Claims{
		UserID:   uuid.New(),
		TenantID: &hostTenant,
		Roles:    []string{access.RolePlatformRoot},
	}

	rec, _ := serveScoped(t, access.TenantScope, hostTenant,
		"/tenants/{tenantID}", "/tenants/"+uuid.New().String(), claims)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestScopeAllowsCustomerOnOwnResource(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	claims := &jwt.Claims{
		UserID:     uuid.New(),
		TenantID:   &tenantID,
		CustomerID: &customerID,
		Roles:      []string{access.RoleCustomer},
	}

	path := "/tenants/" + tenantID.String() + "/customers/" + customerID.String()
	rec, _ := serveScoped(t, access.TenantOrCustomerScope, uuid.New(),
		"/tenants/{tenantID}/customers/{customerID}", path, claims)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestScopeDeniesCustomerOnOtherCustomer(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	claims := &jwt.Claims{
		UserID:     uuid.New(),
		TenantID:   &tenantID,
		CustomerID: &customerID,
		Roles:      []string{access.RoleCustomer},
	}

	path := "/tenants/" + tenantID.String() + "/customers/" + uuid.New().String()
	rec, _ := serveScoped(t, access.TenantOrCustomerScope, uuid.New(),
		"/tenants/{tenantID}/customers/{customerID}", path, claims)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestScopeRejectsMalformedTenantID(t *testing.T) {
	tenantID := uuid.New()
	claims := &jwt.Claims{
		UserID:   uuid.New(),
		TenantID: &tenantID,
		Roles:    []string{access.RoleTenantStaff},
	}

	rec, called := serveScoped(t, access.TenantScope, uuid.New(),
		"/tenants/{tenantID}", "/tenants/not-a-uuid", claims)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if *called {
		t.Error("handler must not run for malformed ids")
	}
}
