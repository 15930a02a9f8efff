package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-marketplace/internal/config"
	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/events"
	"github.com/spec-kit/car-marketplace/internal/repository"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

// VehicleList is the paginated result of a listing query.
type VehicleList struct {
	Vehicles []*domain.Vehicle `json:"vehicles"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
	Total    int64             `json:"total"`
}

// VehicleService coordinates listing workflows.
type VehicleService struct {
	vehicles   repository.VehicleRepository
	brands     repository.BrandRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	market     config.MarketConfig
}

// VehicleDependencies bundles repositories for the vehicle service.
type VehicleDependencies struct {
	VehicleRepo repository.VehicleRepository
	BrandRepo   repository.BrandRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewVehicleService constructs the service.
func NewVehicleService(cfg config.Config, deps VehicleDependencies) *VehicleService {
	return &VehicleService{
		vehicles:   deps.VehicleRepo,
		brands:     deps.BrandRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		market:     cfg.Market,
	}
}

// VehicleCreateInput describes a new listing.
type VehicleCreateInput struct {
	Type         domain.VehicleType
	Model        string
	FactoryYear  int
	ModelYear    int
	Color        domain.VehicleColor
	FuelType     domain.FuelType
	Transmission domain.TransmissionType
	Condition    domain.VehicleCondition
	Status       domain.VehicleStatus
	Mileage      int
	Plate        string
	Price        float64
	Description  *string
	BrandID      string
	OwnerID      string
}

// VehicleUpdateInput carries optional changes. Nil fields are left as-is.
type VehicleUpdateInput struct {
	Type         *domain.VehicleType
	Model        *string
	FactoryYear  *int
	ModelYear    *int
	Color        *domain.VehicleColor
	FuelType     *domain.FuelType
	Transmission *domain.TransmissionType
	Condition    *domain.VehicleCondition
	Status       *domain.VehicleStatus
	Mileage      *int
	Plate        *string
	Price        *float64
	Description  *string
	BrandID      *string
	OwnerID      *string
}

// CreateListing registers a vehicle for the given owner. The brand must
// exist, the plate must be free and the owner must be a known user.
func (s *VehicleService) CreateListing(ctx context.Context, input VehicleCreateInput) (*domain.Vehicle, error) {
	if err := s.validateYears(input.FactoryYear, input.ModelYear); err != nil {
		return nil, err
	}
	if err := s.validateLimits(input.Price, input.Mileage); err != nil {
		return nil, err
	}
	if _, err := s.brands.GetByID(ctx, input.BrandID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("brand does not exist", nil)
		}
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, input.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("owner does not exist", nil)
		}
		return nil, err
	}
	if err := s.ensurePlateFree(ctx, input.Plate, ""); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.VehicleStatusAvailable
	}

	vehicle := &domain.Vehicle{
		Type:         input.Type,
		Model:        input.Model,
		FactoryYear:  input.FactoryYear,
		ModelYear:    input.ModelYear,
		Color:        input.Color,
		FuelType:     input.FuelType,
		Transmission: input.Transmission,
		Condition:    input.Condition,
		Status:       status,
		Mileage:      input.Mileage,
		Plate:        input.Plate,
		Price:        input.Price,
		Description:  input.Description,
		BrandID:      input.BrandID,
		OwnerID:      input.OwnerID,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventVehicleListed, vehicle.OwnerID, events.VehicleListedPayload{
		VehicleID: vehicle.ID,
		BrandID:   vehicle.BrandID,
		OwnerID:   vehicle.OwnerID,
		Model:     vehicle.Model,
		Price:     vehicle.Price,
	})
	return vehicle, nil
}

// GetVehicle returns a listing by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("vehicle", nil)
		}
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles returns a filtered page plus the unpaginated total.
func (s *VehicleService) ListVehicles(ctx context.Context, filter repository.VehicleFilter) (*VehicleList, error) {
	vehicles, total, err := s.vehicles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &VehicleList{Vehicles: vehicles, Offset: filter.Offset, Limit: filter.Limit, Total: total}, nil
}

// UpdateVehicle applies partial changes to an existing listing. Ownership is
// decided by the caller (owner OR admin); this method only validates data.
func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle, input VehicleUpdateInput) (*domain.Vehicle, error) {
	oldStatus := vehicle.Status

	if input.Plate != nil && *input.Plate != vehicle.Plate {
		if err := s.ensurePlateFree(ctx, *input.Plate, vehicle.ID); err != nil {
			return nil, err
		}
		vehicle.Plate = *input.Plate
	}
	if input.BrandID != nil && *input.BrandID != vehicle.BrandID {
		if _, err := s.brands.GetByID(ctx, *input.BrandID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("brand does not exist", nil)
			}
			return nil, err
		}
		vehicle.BrandID = *input.BrandID
	}
	if input.OwnerID != nil && *input.OwnerID != vehicle.OwnerID {
		if _, err := s.users.GetByID(ctx, *input.OwnerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("owner does not exist", nil)
			}
			return nil, err
		}
		vehicle.OwnerID = *input.OwnerID
	}

	if input.Type != nil {
		vehicle.Type = *input.Type
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.FactoryYear != nil {
		vehicle.FactoryYear = *input.FactoryYear
	}
	if input.ModelYear != nil {
		vehicle.ModelYear = *input.ModelYear
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.FuelType != nil {
		vehicle.FuelType = *input.FuelType
	}
	if input.Transmission != nil {
		vehicle.Transmission = *input.Transmission
	}
	if input.Condition != nil {
		vehicle.Condition = *input.Condition
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}
	if input.Mileage != nil {
		vehicle.Mileage = *input.Mileage
	}
	if input.Price != nil {
		vehicle.Price = *input.Price
	}
	if input.Description != nil {
		vehicle.Description = input.Description
	}

	if input.FactoryYear != nil || input.ModelYear != nil {
		if err := s.validateYears(vehicle.FactoryYear, vehicle.ModelYear); err != nil {
			return nil, err
		}
	}
	if err := s.validateLimits(vehicle.Price, vehicle.Mileage); err != nil {
		return nil, err
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	if input.Status != nil && oldStatus != vehicle.Status {
		s.publish(ctx, events.EventVehicleStatusChanged, vehicle.OwnerID, events.VehicleStatusChangedPayload{
			VehicleID: vehicle.ID,
			OldStatus: oldStatus,
			NewStatus: vehicle.Status,
		})
	}
	return vehicle, nil
}

// DeleteVehicle removes a listing. Ownership is decided by the caller.
func (s *VehicleService) DeleteVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := s.vehicles.Delete(ctx, vehicle.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("vehicle", nil)
		}
		return err
	}

	s.publish(ctx, events.EventVehicleRemoved, vehicle.OwnerID, events.VehicleRemovedPayload{
		VehicleID: vehicle.ID,
		OwnerID:   vehicle.OwnerID,
	})
	return nil
}

func (s *VehicleService) ensurePlateFree(ctx context.Context, plate, excludeID string) error {
	existing, err := s.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperrors.NewConflict("a vehicle with this plate already exists", nil)
	}
	return nil
}

// validateYears keeps factory/model years inside configured bounds and allows
// the model year to run at most one year ahead of the factory year.
func (s *VehicleService) validateYears(factoryYear, modelYear int) error {
	currentYear := time.Now().Year()
	maxYear := currentYear + s.market.MaxFutureYears

	if factoryYear < s.market.MinFactoryYear || factoryYear > maxYear {
		return apperrors.NewValidationError("factory year out of range", map[string]any{
			"min": s.market.MinFactoryYear,
			"max": maxYear,
		})
	}
	if modelYear < factoryYear || modelYear > factoryYear+1 {
		return apperrors.NewValidationError("model year must be the factory year or the following one", nil)
	}
	return nil
}

func (s *VehicleService) validateLimits(price float64, mileage int) error {
	if price <= 0 || (s.market.MaxPrice > 0 && price > s.market.MaxPrice) {
		return apperrors.NewValidationError("price out of range", map[string]any{"max": s.market.MaxPrice})
	}
	if mileage < 0 || (s.market.MaxMileage > 0 && mileage > s.market.MaxMileage) {
		return apperrors.NewValidationError("mileage out of range", map[string]any{"max": s.market.MaxMileage})
	}
	return nil
}

func (s *VehicleService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
