package dto

import (
	"time"

	"github.com/spec-kit/car-marketplace/internal/domain"
)

// BrandCreateRequest payload for admin brand creation.
type BrandCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// BrandUpdateRequest payload for partial brand updates.
type BrandUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// BrandResponse is the public shape of a brand.
type BrandResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BrandListResponse is a paginated brand page.
type BrandListResponse struct {
	Brands []BrandResponse `json:"brands"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
	Total  int64           `json:"total"`
}

// NewBrandResponse maps a domain brand to its public shape.
func NewBrandResponse(brand *domain.Brand) BrandResponse {
	return BrandResponse{
		ID:          brand.ID,
		Name:        brand.Name,
		Description: brand.Description,
		Active:      brand.Active,
		CreatedAt:   brand.CreatedAt,
		UpdatedAt:   brand.UpdatedAt,
	}
}

// NewBrandResponses maps a slice of brands.
func NewBrandResponses(brands []*domain.Brand) []BrandResponse {
	out := make([]BrandResponse, 0, len(brands))
	for _, brand := range brands {
		out = append(out, NewBrandResponse(brand))
	}
	return out
}
