package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/startkit/accounts-api/internal/api/metrics"
	"github.com/startkit/accounts-api/internal/core/domain"
)

// CurrentUser returns the authenticated user injected by Auth, or nil when
// the middleware did not run.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ContextUserKey).(*domain.User)
	return user
}

// RequireActive rejects requests from deactivated accounts. Must be
// chained after Auth.
func RequireActive() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !user.IsActive {
				metrics.AuthFailuresTotal.WithLabelValues("inactive").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "inactive user")
			}
			return next(c)
		}
	}
}

// RequireSuperuser rejects non-superuser accounts. Chained after
// RequireActive, so the active check is already satisfied here.
func RequireSuperuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !user.IsSuperuser {
				metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "not enough permissions")
			}
			return next(c)
		}
	}
}
