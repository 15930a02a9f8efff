package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-marketplace/internal/api/dto"
	"github.com/spec-kit/car-marketplace/internal/repository"
	"github.com/spec-kit/car-marketplace/internal/service"
)

// BrandsHandler exposes the public brand catalog.
type BrandsHandler struct {
	brands *service.BrandService
}

// NewBrandsHandler constructs the handler.
func NewBrandsHandler(brandService *service.BrandService) *BrandsHandler {
	return &BrandsHandler{brands: brandService}
}

// Get handles GET /brands/:id.
func (h *BrandsHandler) Get(c *fiber.Ctx) error {
	brand, err := h.brands.GetBrand(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBrandResponse(brand))
}

// List handles GET /brands. Defaults to active brands only.
func (h *BrandsHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	active := c.QueryBool("active", true)
	filter := repository.BrandFilter{
		Search: c.Query("search"),
		Active: &active,
		Limit:  limit,
		Offset: offset,
	}

	list, err := h.brands.ListBrands(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(dto.BrandListResponse{
		Brands: dto.NewBrandResponses(list.Brands),
		Offset: list.Offset,
		Limit:  list.Limit,
		Total:  list.Total,
	})
}

// AdminBrandsHandler exposes the administrative brand surface.
type AdminBrandsHandler struct {
	brands *service.BrandService
}

// NewAdminBrandsHandler constructs the handler.
func NewAdminBrandsHandler(brandService *service.BrandService) *AdminBrandsHandler {
	return &AdminBrandsHandler{brands: brandService}
}

// Create handles POST /admin/brands.
func (h *AdminBrandsHandler) Create(c *fiber.Ctx) error {
	var req dto.BrandCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	brand, err := h.brands.CreateBrand(c.Context(), service.BrandCreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewBrandResponse(brand))
}

// Update handles PUT /admin/brands/:id.
func (h *AdminBrandsHandler) Update(c *fiber.Ctx) error {
	var req dto.BrandUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	brand, err := h.brands.UpdateBrand(c.Context(), c.Params("id"), service.BrandUpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBrandResponse(brand))
}

// Activate handles PATCH /admin/brands/:id/activate.
func (h *AdminBrandsHandler) Activate(c *fiber.Ctx) error {
	brand, err := h.brands.SetActive(c.Context(), c.Params("id"), true)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBrandResponse(brand))
}

// Deactivate handles PATCH /admin/brands/:id/deactivate.
func (h *AdminBrandsHandler) Deactivate(c *fiber.Ctx) error {
	brand, err := h.brands.SetActive(c.Context(), c.Params("id"), false)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBrandResponse(brand))
}

// Delete handles DELETE /admin/brands/:id.
func (h *AdminBrandsHandler) Delete(c *fiber.Ctx) error {
	if err := h.brands.DeleteBrand(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
