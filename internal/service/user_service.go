package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-marketplace/internal/auth"
	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/events"
	"github.com/spec-kit/car-marketplace/internal/repository"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

// UserService coordinates account lifecycle and admin user management.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// UserRegisterInput describes the public registration payload.
type UserRegisterInput struct {
	Username string
	FullName string
	Email    string
	Password string
}

// UserUpdateInput carries optional profile changes. Nil fields are left as-is.
type UserUpdateInput struct {
	Username *string
	FullName *string
	Email    *string
	Password *string
}

// Register creates a new account with role user. Registration is public by
// design; username and email uniqueness are enforced.
func (s *UserService) Register(ctx context.Context, input UserRegisterInput) (*domain.User, error) {
	if err := s.ensureUsernameFree(ctx, input.Username, ""); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
	})
	return user, nil
}

// GetProfile returns the account owning the given ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies partial self-service changes, re-hashing the password
// when one is supplied.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, *input.Username, userID); err != nil {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *input.Email, userID); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the caller's own account.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}

// ListUsers returns accounts matching the search term (admin only surface).
func (s *UserService) ListUsers(ctx context.Context, search string, limit, offset int) ([]*domain.User, error) {
	return s.users.List(ctx, search, limit, offset)
}

// SetActive flips the account's active flag. Deactivation takes effect on the
// next authenticated request, not on tokens already mid-flight.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Active = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if !active {
		s.publish(ctx, events.EventUserDeactivated, userID, events.UserDeactivatedPayload{UserID: userID})
	}
	return user, nil
}

// ChangeRole assigns a new role. Outstanding access tokens keep their old
// role claim until expiry; refresh and re-authentication pick up the new one.
func (s *UserService) ChangeRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldRole := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldRole != role {
		s.publish(ctx, events.EventUserRoleChanged, userID, events.UserRoleChangedPayload{
			UserID:  userID,
			OldRole: oldRole,
			NewRole: role,
		})
	}
	return user, nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username, excludeID string) error {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperrors.NewConflict("username already taken", nil)
	}
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email, excludeID string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperrors.NewConflict("email already registered", nil)
	}
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
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
