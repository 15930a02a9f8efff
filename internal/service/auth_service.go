package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-marketplace/internal/auth"
	"github.com/spec-kit/car-marketplace/internal/config"
	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/repository"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

// ErrInvalidCredentials covers unknown email, deactivated account and wrong
// password alike, so callers cannot probe which part failed.
var ErrInvalidCredentials = apperrors.NewUnauthorized("invalid email or password")

// AuthService verifies credentials, issues token pairs and refreshes access
// tokens. It keeps no state between requests; every decision is made from the
// inputs plus one user-record read.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates by email and password and issues an access/refresh
// token pair. The access token carries the user's current role; the refresh
// token carries none.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokenMgr.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}

// Refresh mints a fresh access token from a valid refresh token. The user
// record is re-read so the new token reflects the current role, and a user
// deleted or deactivated since login is rejected. The refresh token itself is
// neither rotated nor invalidated; it stays usable until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !user.Active {
		return "", ErrInvalidCredentials
	}

	return s.tokenMgr.GenerateAccessToken(user.ID, user.Role)
}

// ChangePassword verifies the current password before storing a new digest.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
