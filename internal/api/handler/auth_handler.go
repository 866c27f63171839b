package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/startkit/accounts-api/internal/api/metrics"
	"github.com/startkit/accounts-api/internal/core/ports"
)

// AuthHandler exchanges credentials for bearer tokens.
type AuthHandler struct {
	users  ports.UserService
	tokens ports.TokenIssuer
}

func NewAuthHandler(users ports.UserService, tokens ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login authenticates a user and returns a signed access token.
//
// @Summary      Login
// @Description  OAuth2-style password flow: form-encoded username and password.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if user == nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "incorrect username or password"})
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "inactive user"})
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
