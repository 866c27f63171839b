package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/startkit/accounts-api/internal/api/middleware"
	"github.com/startkit/accounts-api/internal/core/domain"
	"github.com/startkit/accounts-api/internal/core/ports"
)

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	now := time.Now().UTC()
	stub := &stubUserService{
		createFn: func(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Email != "eve@example.com" || input.Username != "eve" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{
				ID: 7, Email: input.Email, Username: input.Username,
				FullName: input.FullName, PasswordHash: "$2a$10$opaque",
				IsActive: true, CreatedAt: now, UpdatedAt: now,
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/users",
		`{"email":"eve@example.com","username":"eve","password":"longenough","full_name":"Eve E"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(7) || resp["username"] != "eve" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	// The hash must never appear in a response, under any key.
	body := rec.Body.String()
	if strings.Contains(body, "opaque") || strings.Contains(body, "password") {
		t.Fatalf("password hash leaked into response: %s", body)
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/users",
		`{"email":"eve@example.com","username":"eve","password":"longenough"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_Create_InvalidPayload(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	// Password below the minimum length.
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/users",
		`{"email":"eve@example.com","username":"eve","password":"short"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Me(t *testing.T) {
	e := echo.New()
	handler := NewUserHandler(&stubUserService{})

	me := &domain.User{ID: 3, Username: "carol", Email: "carol@example.com", IsActive: true}
	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/users/me", "")
	c.Set(middleware.ContextUserKey, me)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "carol" {
		t.Fatalf("expected own profile, got %+v", resp)
	}
}

func TestUserHandler_UpdateMe_PartialUpdate(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	me := &domain.User{ID: 3, Username: "carol", Email: "carol@example.com", IsActive: true}
	stub := &stubUserService{
		updateFn: func(_ context.Context, user *domain.User, input ports.UpdateUserInput) (*domain.User, error) {
			if input.Email != nil || input.Username != nil || input.Password != nil {
				t.Fatalf("fields absent from the request must stay nil: %+v", input)
			}
			if input.FullName == nil || *input.FullName != "X" {
				t.Fatalf("full_name not carried: %+v", input)
			}
			updated := *user
			updated.FullName = *input.FullName
			return &updated, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/users/me", `{"full_name":"X"}`)
	c.Set(middleware.ContextUserKey, me)

	if err := handler.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["full_name"] != "X" || resp["email"] != "carol@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getByIDFn: func(context.Context, int64) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/users/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_List_PassesPagination(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		listFn: func(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
			if filter.Skip != 5 || filter.Limit != 10 || !filter.ActiveOnly {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return []*domain.User{{ID: 6, Username: "u6", IsActive: true}}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/users?skip=5&limit=10", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["username"] != "u6" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Deactivate(t *testing.T) {
	e := echo.New()
	target := &domain.User{ID: 9, Username: "gone", IsActive: true}
	stub := &stubUserService{
		getByIDFn: func(_ context.Context, id int64) (*domain.User, error) {
			if id != 9 {
				t.Fatalf("unexpected id: %d", id)
			}
			return target, nil
		},
		deactivateFn: func(_ context.Context, user *domain.User) (*domain.User, error) {
			deactivated := *user
			deactivated.IsActive = false
			return &deactivated, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newJSONContext(e, http.MethodDelete, "/api/v1/users/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := handler.Deactivate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] == "" {
		t.Fatalf("expected confirmation message, got %+v", resp)
	}
}

func TestUserHandler_BadID(t *testing.T) {
	e := echo.New()
	handler := NewUserHandler(&stubUserService{})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/users/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
