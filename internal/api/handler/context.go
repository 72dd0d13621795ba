package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andestravel/travel-requests/internal/api/middleware"
	"github.com/andestravel/travel-requests/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing identity means the route was
// wired without the middleware, which is a 401 as far as the caller cares.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.ID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
