package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/repository"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the resolved, request-scoped identity of the caller.
type Principal struct {
	UserID string
	Role   domain.UserRole
	User   *domain.User
}

// Middleware validates bearer access tokens and loads principals. The user
// record is re-fetched on every request so deactivation and role changes take
// effect without waiting for token expiry.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewMiddleware constructs the access-control middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	claims, err := m.tokens.ParseToken(parts[1], domain.TokenKindAccess)
	if err != nil {
		// expired vs invalid vs kind mismatch stay distinguishable in logs
		// but collapse to one external message
		m.logger.Debug("access token rejected", zap.Error(err))
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid authentication credentials")
		}
		return apperrors.MapError(err)
	}
	if !user.Active {
		return apperrors.NewUnauthorized("invalid authentication credentials")
	}

	c.Locals(principalKey, &Principal{UserID: user.ID, Role: user.Role, User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
