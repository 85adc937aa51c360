package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portsrepo "github.com/hroffice/hroffice_backend/internal/core/ports/repositories"
	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	"github.com/hroffice/hroffice_backend/internal/middleware"
)

// authzService resolves capability checks from the actor's role.
type authzService struct {
	userRepo portsrepo.UserRepository
}

// NewAuthzService creates the permission-check collaborator.
func NewAuthzService(userRepo portsrepo.UserRepository) portssvc.AuthzSvcFacade {
	return &authzService{userRepo: userRepo}
}

var _ portssvc.AuthzSvcFacade = (*authzService)(nil)

// HasCapability checks whether the actor's role grants the capability.
// Returns apperrors.ErrNotFound for unknown actors and apperrors.ErrForbidden
// when the role lacks the capability.
func (s *authzService) HasCapability(ctx context.Context, actorID string, capability domain.Capability) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Capability check failed: actor not found", slog.String("actor_id", actorID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to load actor for capability check", slog.String("error", err.Error()), slog.String("actor_id", actorID))
		return fmt.Errorf("failed to check capability: %w", err)
	}

	if !user.Role.HasCapability(capability) {
		logger.Warn("Capability check denied", slog.String("actor_id", actorID), slog.String("capability", string(capability)), slog.String("role", string(user.Role)))
		return fmt.Errorf("%w: capability %s required", apperrors.ErrForbidden, capability)
	}
	return nil
}
