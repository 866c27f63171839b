package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/startkit/accounts-api/internal/api/middleware"
	"github.com/startkit/accounts-api/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth middleware
// and fast-fails before any service call when the chain did not run.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
