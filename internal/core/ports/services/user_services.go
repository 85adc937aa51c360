package services

import (
	"context"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
	"github.com/hroffice/hroffice_backend/internal/dto"
)

// UserSvcFacade exposes employee account operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// Authenticate verifies credentials and returns the account on success.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// EnsureBootstrapAdmin creates the first HR admin account when the user
	// table is empty. No-op once any account exists.
	EnsureBootstrapAdmin(ctx context.Context, username, name, password string) error
}

// AuthzSvcFacade is the permission collaborator consumed by the core:
// "does this actor hold capability X".
type AuthzSvcFacade interface {
	// HasCapability returns nil when the actor holds the capability,
	// apperrors.ErrForbidden when not, apperrors.ErrNotFound for unknown actors.
	HasCapability(ctx context.Context, actorID string, capability domain.Capability) error
}
