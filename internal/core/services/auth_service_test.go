package services_test

import (
	"context"
	"testing"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/lifedeck/coaching-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
)

type mockUserRepo struct {
	store         map[string]*domain.User
	simulateError error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{store: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for _, u := range m.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	for _, u := range m.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Creates account AND the all-zero progress profile", func(t *testing.T) {
		users := newMockUserRepo()
		profiles := newMockProfileRepo()
		svc := services.NewAuthService(users, profiles, newFakeClock())

		user, err := svc.Register(ctx, services.RegisterInput{
			Email:    "Coach@Example.com",
			Password: "long-enough-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, "coach@example.com", user.Email)
		assert.NotEmpty(t, user.ID)

		profile, err := profiles.Load(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, profile.LifePoints)
		assert.Len(t, profile.Achievements, len(domain.DefaultAchievementCatalog()))
	})

	t.Run("Error: Duplicate email", func(t *testing.T) {
		users := newMockUserRepo()
		profiles := newMockProfileRepo()
		svc := services.NewAuthService(users, profiles, newFakeClock())

		_, err := svc.Register(ctx, services.RegisterInput{Email: "a@b.com", Password: "password123"})
		assert.NoError(t, err)

		_, err = svc.Register(ctx, services.RegisterInput{Email: "a@b.com", Password: "password456"})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("Error: Invalid email blocked before any persistence", func(t *testing.T) {
		users := newMockUserRepo()
		profiles := newMockProfileRepo()
		svc := services.NewAuthService(users, profiles, newFakeClock())

		_, err := svc.Register(ctx, services.RegisterInput{Email: "nope", Password: "password123"})

		assert.Equal(t, domain.ErrInvalidEmail, err)
		assert.Empty(t, users.store)
		assert.Empty(t, profiles.store)
	})

	t.Run("Error: Weak password blocked before any persistence", func(t *testing.T) {
		users := newMockUserRepo()
		profiles := newMockProfileRepo()
		svc := services.NewAuthService(users, profiles, newFakeClock())

		_, err := svc.Register(ctx, services.RegisterInput{Email: "a@b.com", Password: "short"})

		assert.Equal(t, domain.ErrPasswordTooShort, err)
		assert.Empty(t, users.store)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*services.AuthService, *mockUserRepo) {
		t.Helper()
		users := newMockUserRepo()
		svc := services.NewAuthService(users, newMockProfileRepo(), newFakeClock())
		_, err := svc.Register(ctx, services.RegisterInput{Email: "coach@example.com", Password: "password123"})
		assert.NoError(t, err)
		return svc, users
	}

	t.Run("Success: Valid credentials", func(t *testing.T) {
		svc, _ := setup(t)

		user, err := svc.Login(ctx, services.LoginInput{Email: "coach@example.com", Password: "password123"})

		assert.NoError(t, err)
		assert.Equal(t, "coach@example.com", user.Email)
	})

	t.Run("Security: Wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc, _ := setup(t)

		_, errWrongPass := svc.Login(ctx, services.LoginInput{Email: "coach@example.com", Password: "wrong-password"})
		_, errNoUser := svc.Login(ctx, services.LoginInput{Email: "ghost@example.com", Password: "password123"})

		assert.Equal(t, domain.ErrInvalidCredentials, errWrongPass)
		assert.Equal(t, domain.ErrInvalidCredentials, errNoUser)
	})
}
