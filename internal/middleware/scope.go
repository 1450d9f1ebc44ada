package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pointline/pointline-api/internal/access"
	"github.com/pointline/pointline-api/internal/pkg/response"
)

// Scope returns middleware that evaluates an access policy against the
// caller's claims and the route's tenant/customer parameters. The policy is
// evaluated before the handler runs; a Deny never reaches the handler.
//
// Route ids are read from the chi URL params "tenantID" and "customerID";
// a route that does not declare a param contributes uuid.Nil.
func Scope(policy access.Policy, hostTenantID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scopeCtx := access.Context{
				HostTenantID: hostTenantID,
			}

			if claims := GetClaims(r.Context()); claims != nil {
				scopeCtx.IsAuthenticated = true
				scopeCtx.CallerCustomerID = claims.CustomerID
				scopeCtx.Roles = claims.Roles
				// Tenant binding counts only for tenant-side roles. A
				// plain customer is enrolled in a tenant but must not
				// gain tenant-wide access through that enrollment.
				if claims.HasRole(access.RolePlatformRoot) ||
					claims.HasRole(access.RoleTenantOwner) ||
					claims.HasRole(access.RoleTenantStaff) {
					scopeCtx.CallerTenantID = claims.TenantID
				}
			}

			if raw := chi.URLParam(r, "tenantID"); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					response.BadRequest(w, "invalid tenant id")
					return
				}
				scopeCtx.RouteTenantID = id
			}
			if raw := chi.URLParam(r, "customerID"); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					response.BadRequest(w, "invalid customer id")
					return
				}
				scopeCtx.RouteCustomerID = id
			}

			if policy.Decide(scopeCtx) != access.Allow {
				log.Warn().
					Str("policy", policy.Name).
					Str("path", r.URL.Path).
					Str("route_tenant", scopeCtx.RouteTenantID.String()).
					Msg("scope access denied")
				response.Forbidden(w, "Insufficient permissions for this scope")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
