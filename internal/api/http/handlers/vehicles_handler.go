package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-marketplace/internal/api/dto"
	"github.com/spec-kit/car-marketplace/internal/auth"
	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/repository"
	"github.com/spec-kit/car-marketplace/internal/service"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

// VehiclesHandler exposes the public and owner-facing listing routes.
type VehiclesHandler struct {
	vehicles *service.VehicleService
}

// NewVehiclesHandler constructs the handler.
func NewVehiclesHandler(vehicleService *service.VehicleService) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicleService}
}

// Create handles POST /vehicles. The listing is always owned by the caller.
func (h *VehiclesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	var req dto.VehicleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Model == "" || req.Plate == "" || req.BrandID == "" {
		return fiber.NewError(http.StatusBadRequest, "model, plate, brand_id required")
	}

	vehicle, err := h.vehicles.CreateListing(c.Context(), createInput(req, principal.UserID))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewVehicleResponse(vehicle))
}

// Get handles GET /vehicles/:id (public).
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	vehicle, err := h.vehicles.GetVehicle(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVehicleResponse(vehicle))
}

// List handles GET /vehicles (public, filtered, paginated).
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
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

// Update handles PUT /vehicles/:id. Owner or admin only.
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	vehicle, err := h.vehicles.GetVehicle(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := auth.CheckOwnerOrAdmin(principal, vehicle.OwnerID); err != nil {
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

// Delete handles DELETE /vehicles/:id. Owner or admin only.
func (h *VehiclesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	vehicle, err := h.vehicles.GetVehicle(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := auth.CheckOwnerOrAdmin(principal, vehicle.OwnerID); err != nil {
		return err
	}

	if err := h.vehicles.DeleteVehicle(c.Context(), vehicle); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func createInput(req dto.VehicleCreateRequest, ownerID string) service.VehicleCreateInput {
	return service.VehicleCreateInput{
		Type:         req.Type,
		Model:        req.Model,
		FactoryYear:  req.FactoryYear,
		ModelYear:    req.ModelYear,
		Color:        req.Color,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Condition:    req.Condition,
		Status:       req.Status,
		Mileage:      req.Mileage,
		Plate:        req.Plate,
		Price:        req.Price,
		Description:  req.Description,
		BrandID:      req.BrandID,
		OwnerID:      ownerID,
	}
}

func updateInput(req dto.VehicleUpdateRequest) service.VehicleUpdateInput {
	return service.VehicleUpdateInput{
		Type:         req.Type,
		Model:        req.Model,
		FactoryYear:  req.FactoryYear,
		ModelYear:    req.ModelYear,
		Color:        req.Color,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Condition:    req.Condition,
		Status:       req.Status,
		Mileage:      req.Mileage,
		Plate:        req.Plate,
		Price:        req.Price,
		Description:  req.Description,
		BrandID:      req.BrandID,
		OwnerID:      req.OwnerID,
	}
}

func vehicleFilterFromQuery(c *fiber.Ctx) (repository.VehicleFilter, error) {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	filter := repository.VehicleFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	if v := c.Query("vehicle_type"); v != "" {
		t := domain.VehicleType(v)
		filter.Type = &t
	}
	if v := c.Query("color"); v != "" {
		color := domain.VehicleColor(v)
		filter.Color = &color
	}
	if v := c.Query("fuel_type"); v != "" {
		fuel := domain.FuelType(v)
		filter.FuelType = &fuel
	}
	if v := c.Query("transmission"); v != "" {
		tr := domain.TransmissionType(v)
		filter.Transmission = &tr
	}
	if v := c.Query("condition"); v != "" {
		cond := domain.VehicleCondition(v)
		filter.Condition = &cond
	}
	if v := c.Query("status"); v != "" {
		status := domain.VehicleStatus(v)
		filter.Status = &status
	}
	if v := c.Query("brand_id"); v != "" {
		filter.BrandID = &v
	}
	if v := c.Query("owner_id"); v != "" {
		filter.OwnerID = &v
	}
	if v := c.QueryInt("min_year", 0); v > 0 {
		filter.MinYear = &v
	}
	if v := c.QueryInt("max_year", 0); v > 0 {
		filter.MaxYear = &v
	}
	if v := c.QueryFloat("min_price", 0); v > 0 {
		filter.MinPrice = &v
	}
	if v := c.QueryFloat("max_price", 0); v > 0 {
		filter.MaxPrice = &v
	}

	return filter, nil
}
