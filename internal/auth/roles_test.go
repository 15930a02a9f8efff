package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/car-marketplace/internal/domain"
)

func TestCheckRole(t *testing.T) {
	admin := &Principal{UserID: "u1", Role: domain.RoleAdmin}
	user := &Principal{UserID: "u2", Role: domain.RoleUser}

	assert.NoError(t, CheckRole(admin, domain.RoleAdmin))
	assert.Error(t, CheckRole(user, domain.RoleAdmin))
	assert.Error(t, CheckRole(admin, domain.RoleUser))
	assert.Error(t, CheckRole(nil, domain.RoleAdmin))
}

func TestCheckOwnership_IndependentOfRole(t *testing.T) {
	admin := &Principal{UserID: "u1", Role: domain.RoleAdmin}
	user := &Principal{UserID: "u2", Role: domain.RoleUser}

	assert.NoError(t, CheckOwnership(user, "u2"))
	assert.Error(t, CheckOwnership(user, "u1"))

	// admin role alone does not grant ownership
	assert.Error(t, CheckOwnership(admin, "u2"))
	assert.NoError(t, CheckOwnership(admin, "u1"))
}

func TestCheckOwnerOrAdmin(t *testing.T) {
	admin := &Principal{UserID: "u1", Role: domain.RoleAdmin}
	owner := &Principal{UserID: "u2", Role: domain.RoleUser}
	other := &Principal{UserID: "u3", Role: domain.RoleUser}

	assert.NoError(t, CheckOwnerOrAdmin(owner, "u2"))
	assert.NoError(t, CheckOwnerOrAdmin(admin, "u2"))
	assert.Error(t, CheckOwnerOrAdmin(other, "u2"))
}
