package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the generic confirmation envelope.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type createUserRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Username    string `json:"username"     validate:"required,min=3,max=64"`
	Password    string `json:"password"     validate:"required,min=8"`
	FullName    string `json:"full_name"    validate:"omitempty,max=256"`
	IsSuperuser bool   `json:"is_superuser"`
}

// updateUserRequest is a partial update: absent fields stay untouched.
type updateUserRequest struct {
	Email    *string `json:"email"     validate:"omitempty,email"`
	Username *string `json:"username"  validate:"omitempty,min=3,max=64"`
	FullName *string `json:"full_name" validate:"omitempty,max=256"`
	Password *string `json:"password"  validate:"omitempty,min=8"`
}

// --- Response types ---

// tokenResponse is the login payload. token_type is always "bearer".
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userResponse is the public account shape. The password hash is never
// part of this type, so it cannot leak through serialization.
type userResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
