package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/startkit/accounts-api/internal/api/metrics"
	"github.com/startkit/accounts-api/internal/core/domain"
	"github.com/startkit/accounts-api/internal/core/ports"
)

// ContextUserKey is the echo context key under which Auth stores the
// resolved *domain.User.
const ContextUserKey = "current_user"

// Auth extracts the bearer token, verifies it, resolves the subject to a
// stored user, and injects that user into the request context. Every
// failure terminates the chain with 401; handlers behind this middleware
// can assume a present, authenticated user.
func Auth(verifier ports.TokenVerifier, users ports.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subject, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			user, err := users.GetByUsername(c.Request().Context(), subject)
			if err != nil {
				if err == domain.ErrUserNotFound {
					metrics.AuthFailuresTotal.WithLabelValues("unknown_subject").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
				}
				return err
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}
