package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-marketplace/internal/api/dto"
	"github.com/spec-kit/car-marketplace/internal/service"
)

// AdminUsersHandler exposes the administrative account surface.
type AdminUsersHandler struct {
	users *service.UserService
}

// NewAdminUsersHandler constructs the handler.
func NewAdminUsersHandler(userService *service.UserService) *AdminUsersHandler {
	return &AdminUsersHandler{users: userService}
}

// List handles GET /admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	users, err := h.users.ListUsers(c.Context(), c.Query("search"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Get handles GET /admin/users/:id.
func (h *AdminUsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Activate handles PATCH /admin/users/:id/activate.
func (h *AdminUsersHandler) Activate(c *fiber.Ctx) error {
	user, err := h.users.SetActive(c.Context(), c.Params("id"), true)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Deactivate handles PATCH /admin/users/:id/deactivate.
func (h *AdminUsersHandler) Deactivate(c *fiber.Ctx) error {
	user, err := h.users.SetActive(c.Context(), c.Params("id"), false)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// ChangeRole handles PATCH /admin/users/:id/role.
func (h *AdminUsersHandler) ChangeRole(c *fiber.Ctx) error {
	var req dto.RoleChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.ChangeRole(c.Context(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
