package ports

import (
	"context"

	"github.com/startkit/accounts-api/internal/core/domain"
)

// CreateUserInput carries all data needed to create a new account.
type CreateUserInput struct {
	Email       string
	Username    string
	Password    string
	FullName    string
	IsSuperuser bool
}

// UpdateUserInput carries a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Username *string
	FullName *string
	Password *string
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User, input UpdateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, user *domain.User) (*domain.User, error)
	// Authenticate returns the user on success and (nil, nil) for both an
	// unknown username and a wrong password, indistinguishably.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
