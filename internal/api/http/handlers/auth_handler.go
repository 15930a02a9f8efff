package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-marketplace/internal/api/dto"
	"github.com/spec-kit/car-marketplace/internal/auth"
	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/service"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

// AuthHandler exposes login, refresh and password endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	accessToken, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		// token failures collapse to a single 401 externally
		switch err {
		case auth.ErrTokenInvalid, auth.ErrTokenExpired, auth.ErrTokenKindMismatch:
			return apperrors.NewUnauthorized("invalid refresh token")
		}
		return err
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   domain.TokenTypeBearer,
	})
}

// ChangePassword handles POST /auth/password/change (authenticated).
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "current_password and new_password required")
	}

	if err := h.auth.ChangePassword(c.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
