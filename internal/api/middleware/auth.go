package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/andestravel/travel-requests/internal/api/metrics"
	"github.com/andestravel/travel-requests/internal/core/domain"
)

// identityKey is the echo context key the verified identity is stored under.
const identityKey = "identity"

// TokenVerifier is implemented by the token service.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// Auth validates the bearer token and injects the identity into the context.
func Auth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("failure").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("failure").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("failure").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom extracts the identity stored by Auth. The second return is
// false when the middleware did not run for this route.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}
