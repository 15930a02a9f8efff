package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/car-marketplace/internal/auth"
	"github.com/spec-kit/car-marketplace/internal/config"
	"github.com/spec-kit/car-marketplace/internal/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(user).Error(0)
}
func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(user).Error(0)
}
func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserRepo) List(ctx context.Context, search string, limit, offset int) ([]*domain.User, error) {
	args := m.Called(search, limit, offset)
	return args.Get(0).([]*domain.User), args.Error(1)
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret",
			JWTAlgorithm:           "HS256",
			AccessTokenTTLMinutes:  30,
			RefreshTokenTTLMinutes: 1440,
			BcryptCost:             4,
		},
	}
}

func activeUser(t *testing.T, role domain.UserRole, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.User{
		ID:           "user-1",
		Username:     "driver",
		Email:        "driver@example.com",
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("success issues pair with role on access token only", func(t *testing.T) {
		repo := new(mockUserRepo)
		user := activeUser(t, domain.RoleAdmin, "s3cret")
		repo.On("GetByEmail", user.Email).Return(user, nil).Once()

		svc := NewAuthService(testConfig(), repo)
		pair, err := svc.Login(context.Background(), user.Email, "s3cret")

		require.NoError(t, err)
		assert.Equal(t, domain.TokenTypeBearer, pair.TokenType)

		accessClaims, err := svc.TokenManager().ParseToken(pair.AccessToken, domain.TokenKindAccess)
		require.NoError(t, err)
		assert.Equal(t, user.ID, accessClaims.UserID())
		require.NotNil(t, accessClaims.Role)
		assert.Equal(t, domain.RoleAdmin, *accessClaims.Role)

		refreshClaims, err := svc.TokenManager().ParseToken(pair.RefreshToken, domain.TokenKindRefresh)
		require.NoError(t, err)
		assert.Equal(t, user.ID, refreshClaims.UserID())
		assert.Nil(t, refreshClaims.Role)
		repo.AssertExpectations(t)
	})

	t.Run("unknown email, inactive account and wrong password are indistinguishable", func(t *testing.T) {
		user := activeUser(t, domain.RoleUser, "s3cret")
		inactive := activeUser(t, domain.RoleUser, "s3cret")
		inactive.Active = false

		cases := []struct {
			name     string
			setup    func(repo *mockUserRepo)
			password string
		}{
			{
				name: "unknown email",
				setup: func(repo *mockUserRepo) {
					repo.On("GetByEmail", mock.Anything).Return(nil, pgx.ErrNoRows).Once()
				},
				password: "s3cret",
			},
			{
				name: "inactive account with correct password",
				setup: func(repo *mockUserRepo) {
					repo.On("GetByEmail", mock.Anything).Return(inactive, nil).Once()
				},
				password: "s3cret",
			},
			{
				name: "wrong password on active account",
				setup: func(repo *mockUserRepo) {
					repo.On("GetByEmail", mock.Anything).Return(user, nil).Once()
				},
				password: "wrong",
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				repo := new(mockUserRepo)
				tc.setup(repo)

				svc := NewAuthService(testConfig(), repo)
				_, err := svc.Login(context.Background(), "driver@example.com", tc.password)

				assert.Equal(t, ErrInvalidCredentials, err)
				repo.AssertExpectations(t)
			})
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("issues access token with current role", func(t *testing.T) {
		repo := new(mockUserRepo)
		user := activeUser(t, domain.RoleUser, "s3cret")
		repo.On("GetByEmail", user.Email).Return(user, nil).Once()

		svc := NewAuthService(testConfig(), repo)
		pair, err := svc.Login(context.Background(), user.Email, "s3cret")
		require.NoError(t, err)

		// role changed after login; refresh must reflect the new role
		promoted := *user
		promoted.Role = domain.RoleAdmin
		repo.On("GetByID", user.ID).Return(&promoted, nil).Once()

		accessToken, err := svc.Refresh(context.Background(), pair.RefreshToken)
		require.NoError(t, err)

		claims, err := svc.TokenManager().ParseToken(accessToken, domain.TokenKindAccess)
		require.NoError(t, err)
		require.NotNil(t, claims.Role)
		assert.Equal(t, domain.RoleAdmin, *claims.Role)
		repo.AssertExpectations(t)
	})

	t.Run("access token presented as refresh fails with kind mismatch", func(t *testing.T) {
		repo := new(mockUserRepo)
		user := activeUser(t, domain.RoleUser, "s3cret")
		repo.On("GetByEmail", user.Email).Return(user, nil).Once()

		svc := NewAuthService(testConfig(), repo)
		pair, err := svc.Login(context.Background(), user.Email, "s3cret")
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), pair.AccessToken)
		assert.ErrorIs(t, err, auth.ErrTokenKindMismatch)
		repo.AssertNotCalled(t, "GetByID")
	})

	t.Run("deleted or deactivated subject rejected", func(t *testing.T) {
		repo := new(mockUserRepo)
		user := activeUser(t, domain.RoleUser, "s3cret")
		repo.On("GetByEmail", user.Email).Return(user, nil).Once()

		svc := NewAuthService(testConfig(), repo)
		pair, err := svc.Login(context.Background(), user.Email, "s3cret")
		require.NoError(t, err)

		repo.On("GetByID", user.ID).Return(nil, pgx.ErrNoRows).Once()
		_, err = svc.Refresh(context.Background(), pair.RefreshToken)
		assert.Equal(t, ErrInvalidCredentials, err)

		deactivated := *user
		deactivated.Active = false
		repo.On("GetByID", user.ID).Return(&deactivated, nil).Once()
		_, err = svc.Refresh(context.Background(), pair.RefreshToken)
		assert.Equal(t, ErrInvalidCredentials, err)
		repo.AssertExpectations(t)
	})

	t.Run("garbage token fails as invalid", func(t *testing.T) {
		svc := NewAuthService(testConfig(), new(mockUserRepo))
		_, err := svc.Refresh(context.Background(), "garbage")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("verifies current password before update", func(t *testing.T) {
		repo := new(mockUserRepo)
		user := activeUser(t, domain.RoleUser, "old-pass")
		repo.On("GetByID", user.ID).Return(user, nil).Once()
		repo.On("Update", mock.MatchedBy(func(u *domain.User) bool {
			return auth.ComparePassword(u.PasswordHash, "new-pass") == nil
		})).Return(nil).Once()

		svc := NewAuthService(testConfig(), repo)
		err := svc.ChangePassword(context.Background(), user.ID, "old-pass", "new-pass")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("wrong current password rejected", func(t *testing.T) {
		repo := new(mockUserRepo)
		user := activeUser(t, domain.RoleUser, "old-pass")
		repo.On("GetByID", user.ID).Return(user, nil).Once()

		svc := NewAuthService(testConfig(), repo)
		err := svc.ChangePassword(context.Background(), user.ID, "not-it", "new-pass")

		assert.Equal(t, ErrInvalidCredentials, err)
		repo.AssertNotCalled(t, "Update")
	})
}
