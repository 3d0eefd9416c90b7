package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/model"
)

// RequireAdmin rejects requests whose resolved identity does not carry the
// ADMIN role. The role comes from the verified token claims; there is no
// separate session store.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := AuthUserFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if user.Role != model.RoleAdmin {
				log.Printf("admin access denied - user=%d url=%s ip=%s", user.ID, c.Request().RequestURI, c.RealIP())
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		}
	}
}
