package dto

import (
	"time"

	"github.com/spec-kit/car-marketplace/internal/domain"
)

// UserRegisterRequest payload for public registration.
type UserRegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest payload for partial profile updates.
type UserUpdateRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// RoleChangeRequest payload for PATCH /admin/users/:id/role.
type RoleChangeRequest struct {
	Role domain.UserRole `json:"role"`
}

// UserResponse is the public shape of an account; the password digest never
// leaves the service.
type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewUserResponse maps a domain user to its public shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
