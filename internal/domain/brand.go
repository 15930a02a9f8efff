package domain

import "time"

// Brand represents a vehicle manufacturer in the catalog.
type Brand struct {
	ID          string
	Name        string
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
