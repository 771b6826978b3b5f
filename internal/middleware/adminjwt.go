package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/service/adminauth"
)

const ctxAdminClaims = "admin_claims"

// RequireAdmin enforces `Authorization: Bearer <JWT>` on /api/admin routes.
func RequireAdmin(svc *adminauth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := svc.ParseToken(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ctxAdminClaims, claims)
			return next(c)
		}
	}
}

// AdminClaims returns the verified claims set by RequireAdmin.
func AdminClaims(c echo.Context) *adminauth.Claims {
	claims, _ := c.Get(ctxAdminClaims).(*adminauth.Claims)
	return claims
}
