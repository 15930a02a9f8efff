package dto

import (
	"time"

	"github.com/spec-kit/car-marketplace/internal/domain"
)

// VehicleCreateRequest payload for new listings. Owner is taken from the
// authenticated principal on the public route; admins supply owner_id.
type VehicleCreateRequest struct {
	Type         domain.VehicleType      `json:"vehicle_type"`
	Model        string                  `json:"model"`
	FactoryYear  int                     `json:"factory_year"`
	ModelYear    int                     `json:"model_year"`
	Color        domain.VehicleColor     `json:"color"`
	FuelType     domain.FuelType         `json:"fuel_type"`
	Transmission domain.TransmissionType `json:"transmission"`
	Condition    domain.VehicleCondition `json:"condition"`
	Status       domain.VehicleStatus    `json:"status"`
	Mileage      int                     `json:"mileage"`
	Plate        string                  `json:"plate"`
	Price        float64                 `json:"price"`
	Description  *string                 `json:"description"`
	BrandID      string                  `json:"brand_id"`
	OwnerID      string                  `json:"owner_id"`
}

// VehicleUpdateRequest payload for partial listing updates.
type VehicleUpdateRequest struct {
	Type         *domain.VehicleType      `json:"vehicle_type"`
	Model        *string                  `json:"model"`
	FactoryYear  *int                     `json:"factory_year"`
	ModelYear    *int                     `json:"model_year"`
	Color        *domain.VehicleColor     `json:"color"`
	FuelType     *domain.FuelType         `json:"fuel_type"`
	Transmission *domain.TransmissionType `json:"transmission"`
	Condition    *domain.VehicleCondition `json:"condition"`
	Status       *domain.VehicleStatus    `json:"status"`
	Mileage      *int                     `json:"mileage"`
	Plate        *string                  `json:"plate"`
	Price        *float64                 `json:"price"`
	Description  *string                  `json:"description"`
	BrandID      *string                  `json:"brand_id"`
	OwnerID      *string                  `json:"owner_id"`
}

// VehicleResponse is the public shape of a listing.
type VehicleResponse struct {
	ID           string                  `json:"id"`
	Type         domain.VehicleType      `json:"vehicle_type"`
	Model        string                  `json:"model"`
	FactoryYear  int                     `json:"factory_year"`
	ModelYear    int                     `json:"model_year"`
	Color        domain.VehicleColor     `json:"color"`
	FuelType     domain.FuelType         `json:"fuel_type"`
	Transmission domain.TransmissionType `json:"transmission"`
	Condition    domain.VehicleCondition `json:"condition"`
	Status       domain.VehicleStatus    `json:"status"`
	Mileage      int                     `json:"mileage"`
	Plate        string                  `json:"plate"`
	Price        float64                 `json:"price"`
	Description  *string                 `json:"description,omitempty"`
	BrandID      string                  `json:"brand_id"`
	OwnerID      string                  `json:"owner_id"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// VehicleListResponse is a paginated listing page.
type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
	Total    int64             `json:"total"`
}

// NewVehicleResponse maps a domain vehicle to its public shape.
func NewVehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           vehicle.ID,
		Type:         vehicle.Type,
		Model:        vehicle.Model,
		FactoryYear:  vehicle.FactoryYear,
		ModelYear:    vehicle.ModelYear,
		Color:        vehicle.Color,
		FuelType:     vehicle.FuelType,
		Transmission: vehicle.Transmission,
		Condition:    vehicle.Condition,
		Status:       vehicle.Status,
		Mileage:      vehicle.Mileage,
		Plate:        vehicle.Plate,
		Price:        vehicle.Price,
		Description:  vehicle.Description,
		BrandID:      vehicle.BrandID,
		OwnerID:      vehicle.OwnerID,
		CreatedAt:    vehicle.CreatedAt,
		UpdatedAt:    vehicle.UpdatedAt,
	}
}

// NewVehicleResponses maps a slice of vehicles.
func NewVehicleResponses(vehicles []*domain.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		out = append(out, NewVehicleResponse(vehicle))
	}
	return out
}
