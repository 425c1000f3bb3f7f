package middleware

import (
	"net/http"
	"strings"

	"lendcore-backend/internal/domain/identity"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// IdentityMiddleware resolves the acting user from the gateway-injected
// headers and stores it on the request context. The upstream gateway owns
// authentication; this layer only shapes the claims into an Actor.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actorID := strings.TrimSpace(c.Request().Header.Get("X-Actor-Id"))
			tenantID := strings.TrimSpace(c.Request().Header.Get("X-Tenant-Id"))
			role := identity.Role(strings.TrimSpace(c.Request().Header.Get("X-Actor-Role")))

			if actorID == "" || tenantID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing actor identity headers"})
			}
			if !role.Known() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown actor role"})
			}

			c.Set(actorContextKey, identity.Actor{ID: actorID, TenantID: tenantID, Role: role})
			return next(c)
		}
	}
}

// ActorFrom returns the Actor placed on the context by IdentityMiddleware.
func ActorFrom(c echo.Context) (identity.Actor, bool) {
	a, ok := c.Get(actorContextKey).(identity.Actor)
	return a, ok
}
