package events

import (
	"time"

	"github.com/spec-kit/car-marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventUserDeactivated      EventType = "user_deactivated"
	EventUserRoleChanged      EventType = "user_role_changed"
	EventVehicleListed        EventType = "vehicle_listed"
	EventVehicleStatusChanged EventType = "vehicle_status_changed"
	EventVehicleRemoved       EventType = "vehicle_removed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// UserDeactivatedPayload payload.
type UserDeactivatedPayload struct {
	UserID string `json:"user_id"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  string          `json:"user_id"`
	OldRole domain.UserRole `json:"old_role"`
	NewRole domain.UserRole `json:"new_role"`
}

// VehicleListedPayload payload.
type VehicleListedPayload struct {
	VehicleID string  `json:"vehicle_id"`
	BrandID   string  `json:"brand_id"`
	OwnerID   string  `json:"owner_id"`
	Model     string  `json:"model"`
	Price     float64 `json:"price"`
}

// VehicleStatusChangedPayload payload.
type VehicleStatusChangedPayload struct {
	VehicleID string               `json:"vehicle_id"`
	OldStatus domain.VehicleStatus `json:"old_status"`
	NewStatus domain.VehicleStatus `json:"new_status"`
}

// VehicleRemovedPayload payload.
type VehicleRemovedPayload struct {
	VehicleID string `json:"vehicle_id"`
	OwnerID   string `json:"owner_id"`
}
