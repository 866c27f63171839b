package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user with this email or username already exists")
var ErrInvalidCredentials = errors.New("incorrect username or password")
var ErrInactiveUser = errors.New("inactive user")
var ErrForbidden = errors.New("not enough permissions")
var ErrInvalidToken = errors.New("invalid or expired token")

// User models an account in the system. PasswordHash never leaves the
// process: it is excluded from JSON marshalling and mapped by hand in the
// repository layer.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
