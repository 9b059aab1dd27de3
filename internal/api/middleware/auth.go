package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	PrincipalIDKey   = "principal_id"
	PrincipalKindKey = "principal_kind"
)

// Auth is the gate in front of every protected handler: it extracts the
// bearer token, verifies it, and attaches the resolved claims to the echo
// context. It establishes who the caller is, not what they may do;
// ownership checks belong to the resource handlers.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(PrincipalIDKey, claims.PrincipalID)
			c.Set(PrincipalKindKey, string(claims.Kind))

			return next(c)
		}
	}
}
