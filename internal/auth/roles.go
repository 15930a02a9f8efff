package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-marketplace/internal/domain"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

// CheckRole fails unless the principal carries exactly the required role.
// Pure predicate, no I/O.
func CheckRole(p *Principal, required domain.UserRole) error {
	if p == nil || p.Role != required {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}

// CheckOwnership fails unless the principal is the resource owner. Admin
// bypass is composed by callers ("owner OR admin"), never embedded here.
func CheckOwnership(p *Principal, ownerID string) error {
	if p == nil || p.UserID != ownerID {
		return apperrors.NewForbidden("not enough permissions to access this resource")
	}
	return nil
}

// CheckOwnerOrAdmin is the usual composition for mutating listing endpoints.
func CheckOwnerOrAdmin(p *Principal, ownerID string) error {
	if CheckRole(p, domain.RoleAdmin) == nil {
		return nil
	}
	return CheckOwnership(p, ownerID)
}

// RequireAdmin ensures the principal has the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("invalid authentication credentials")
		}
		if err := CheckRole(principal, domain.RoleAdmin); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal was loaded by the middleware.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("invalid authentication credentials")
		}
		return c.Next()
	}
}
