package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

type AuthService struct {
	users    domain.UserRepository
	profiles domain.ProfileRepository
	clock    Clock
}

func NewAuthService(users domain.UserRepository, profiles domain.ProfileRepository, clock Clock) *AuthService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AuthService{
		users:    users,
		profiles: profiles,
		clock:    clock,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

// Register creates the account and mints the all-zero progress profile
// that lives for the life of the account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	profile := domain.NewUserProfile(user.ID, s.clock.Now())
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("auth service: failed to create profile: %w", err)
	}

	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the account. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: lookup failed: %w", err)
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
