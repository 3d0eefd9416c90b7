package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
)

const authUserKey = "authUser"

// AuthContext converts the verified JWT placed in the context by the JWT
// middleware into an AuthUser for downstream handlers.
func AuthContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			c.Set(authUserKey, auth.FromClaims(claims))
			return next(c)
		}
	}
}

// AuthUserFromContext returns the request identity set by AuthContext.
func AuthUserFromContext(c echo.Context) (auth.AuthUser, bool) {
	user, ok := c.Get(authUserKey).(auth.AuthUser)
	return user, ok
}

// SetAuthUser places an identity into the context. Used by tests.
func SetAuthUser(c echo.Context, user auth.AuthUser) {
	c.Set(authUserKey, user)
}
