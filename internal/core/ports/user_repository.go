package ports

import (
	"context"

	"github.com/startkit/accounts-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Skip       int  // number of rows to skip (offset pagination)
	Limit      int  // max rows per page (capped by the service)
	ActiveOnly bool // when true, only active accounts are returned
}

// UserRepository defines persistence operations for user accounts.
// Uniqueness of email and username is enforced by the store itself; a
// violated constraint surfaces as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns users in insertion order. Offset pagination has no
	// stable sort key, so pages may shift under concurrent inserts.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
