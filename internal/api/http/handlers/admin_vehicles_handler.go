package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-marketplace/internal/api/dto"
	"github.com/spec-kit/car-marketplace/internal/service"
)

// AdminVehiclesHandler exposes administrative listing routes, including
// creating a listing on behalf of another user.
type AdminVehiclesHandler struct {
	vehicles *service.VehicleService
}

// NewAdminVehiclesHandler constructs the handler.
func NewAdminVehiclesHandler(vehicleService *service.VehicleService) *AdminVehiclesHandler {
	return &AdminVehiclesHandler{vehicles: vehicleService}
}

// Create handles POST /admin/vehicles with an explicit owner_id.
func (h *AdminVehiclesHandler) Create(c *fiber.Ctx) error {
	var req dto.VehicleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Model == "" || req.Plate == "" || req.BrandID == "" || req.OwnerID == "" {
		return fiber.NewError(http.StatusBadRequest, "model, plate, brand_id, owner_id required")
	}

	vehicle, err := h.vehicles.CreateListing(c.Context(), createInput(req, req.OwnerID))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewVehicleResponse(vehicle))
}

// List handles GET /admin/vehicles with the full filter set, including
// listings of any status.
func (h *AdminVehiclesHandler) List(c *fiber.Ctx) error {
	filter, err := vehicleFilterFromQuery(c)
	if err != nil {
		return err
	}

	list, err := h.vehicles.ListVehicles(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.VehicleListResponse{
		Vehicles: dto.NewVehicleResponses(list.Vehicles),
		Offset:   list.Offset,
		Limit:    list.Limit,
		Total:    list.Total,
	})
}

// Update handles PUT /admin/vehicles/:id without an ownership check.
func (h *AdminVehiclesHandler) Update(c *fiber.Ctx) error {
	vehicle, err := h.vehicles.GetVehicle(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.VehicleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.vehicles.UpdateVehicle(c.Context(), vehicle, updateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVehicleResponse(updated))
}

// Delete handles DELETE /admin/vehicles/:id without an ownership check.
func (h *AdminVehiclesHandler) Delete(c *fiber.Ctx) error {
	vehicle, err := h.vehicles.GetVehicle(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.vehicles.DeleteVehicle(c.Context(), vehicle); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
