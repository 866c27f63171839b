package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/startkit/accounts-api/internal/core/domain"
)

func runChain(t *testing.T, user *domain.User, mw echo.MiddlewareFunc) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(ContextUserKey, user)
	}

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, called
}

func TestRequireActive(t *testing.T) {
	code, called := runChain(t, &domain.User{Username: "alice", IsActive: true}, RequireActive())
	if code != http.StatusOK || !called {
		t.Fatalf("active user rejected: code=%d called=%v", code, called)
	}

	code, called = runChain(t, &domain.User{Username: "bob", IsActive: false}, RequireActive())
	if code != http.StatusForbidden || called {
		t.Fatalf("inactive user passed: code=%d called=%v", code, called)
	}

	code, called = runChain(t, nil, RequireActive())
	if code != http.StatusUnauthorized || called {
		t.Fatalf("missing user passed: code=%d called=%v", code, called)
	}
}

func TestRequireSuperuser(t *testing.T) {
	code, called := runChain(t, &domain.User{Username: "root", IsActive: true, IsSuperuser: true}, RequireSuperuser())
	if code != http.StatusOK || !called {
		t.Fatalf("superuser rejected: code=%d called=%v", code, called)
	}

	code, called = runChain(t, &domain.User{Username: "alice", IsActive: true}, RequireSuperuser())
	if code != http.StatusForbidden || called {
		t.Fatalf("non-superuser passed: code=%d called=%v", code, called)
	}

	code, called = runChain(t, nil, RequireSuperuser())
	if code != http.StatusUnauthorized || called {
		t.Fatalf("missing user passed: code=%d called=%v", code, called)
	}
}
