package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/api/middleware"
	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// ctxPrincipal extracts the claims injected by the Auth middleware and
// fast-fails before any service call: a missing or malformed claim means
// the middleware did not run, which is a wiring error surfaced as 401.
func ctxPrincipal(c echo.Context) (id string, kind domain.PrincipalKind, err error) {
	id, _ = c.Get(middleware.PrincipalIDKey).(string)
	if id == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	kindStr, _ := c.Get(middleware.PrincipalKindKey).(string)
	kind = domain.PrincipalKind(kindStr)
	if !kind.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return id, kind, nil
}
