package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-marketplace/internal/api/dto"
	"github.com/spec-kit/car-marketplace/internal/auth"
	"github.com/spec-kit/car-marketplace/internal/service"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

// UsersHandler exposes public registration and self-service profile routes.
// There is no public user listing or lookup by ID; that surface is admin-only
// to avoid account enumeration.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Register handles POST /users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.FullName == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username, full_name, email, password required")
	}

	user, err := h.users.Register(c.Context(), service.UserRegisterInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}
	return c.JSON(dto.NewUserResponse(principal.User))
}

// UpdateMe handles PUT /users/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.UpdateProfile(c.Context(), principal.UserID, service.UserUpdateInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// DeleteMe handles DELETE /users/me.
func (h *UsersHandler) DeleteMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}
	if err := h.users.DeleteAccount(c.Context(), principal.UserID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
