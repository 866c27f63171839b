package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/startkit/accounts-api/internal/api/metrics"
	"github.com/startkit/accounts-api/internal/core/domain"
	"github.com/startkit/accounts-api/internal/core/ports"
	"github.com/startkit/accounts-api/internal/pkg/secure"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// UserService implements account CRUD and credential verification on top of
// a UserRepository. Uniqueness of email/username is not pre-checked: the
// store's own constraint is the sole guard against concurrent duplicates.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	s.logger.Info().Str("username", input.Username).Str("email", input.Email).Msg("creating user")

	hash, err := secure.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  input.IsSuperuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info().Int64("user_id", created.ID).Msg("user created")
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.repo.List(ctx, filter)
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both return (nil, nil): callers cannot tell which check
// failed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !secure.VerifyPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// Update applies only the fields present in input. A provided password is
// re-hashed before storage.
func (s *UserService) Update(ctx context.Context, user *domain.User, input ports.UpdateUserInput) (*domain.User, error) {
	s.logger.Info().Int64("user_id", user.ID).Msg("updating user")

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Password != nil {
		hash, err := secure.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// Deactivate flips the active flag off. Calling it twice is a no-op
// state-wise; the row is retained.
func (s *UserService) Deactivate(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.logger.Info().Int64("user_id", user.ID).Msg("deactivating user")

	user.IsActive = false
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersDeactivatedTotal.Inc()
	return updated, nil
}
