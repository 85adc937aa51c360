package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portsrepo "github.com/hroffice/hroffice_backend/internal/core/ports/repositories"
	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	"github.com/hroffice/hroffice_backend/internal/dto"
	"github.com/hroffice/hroffice_backend/internal/middleware"
)

// ErrInvalidCredentials is returned when username/password verification fails.
// It is deliberately indistinguishable between unknown user and wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// userService manages employee accounts.
type userService struct {
	userRepo portsrepo.UserRepository
	authzSvc portssvc.AuthzSvcFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, authzSvc portssvc.AuthzSvcFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, authzSvc: authzSvc}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers an employee account. Requires the manage_users capability.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authzSvc.HasCapability(ctx, actorID, domain.CapManageUsers); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, req.Username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         domain.UserRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// EnsureBootstrapAdmin creates the first HR admin account when no accounts
// exist yet. Skips the capability check: there is nobody to hold it.
func (s *userService) EnsureBootstrapAdmin(ctx context.Context, username, name, password string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	exists, err := s.userRepo.HasAnyUser(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	admin := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleHRAdmin,
	}
	admin.CreatedAt = now
	admin.CreatedBy = admin.UserID
	admin.LastUpdatedAt = now
	admin.LastUpdatedBy = admin.UserID

	if err := s.userRepo.SaveUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to save bootstrap admin: %w", err)
	}
	logger.Info("Bootstrap admin account created", slog.String("user_id", admin.UserID), slog.String("username", username))
	return nil
}

// GetUserByID fetches an employee account.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// Authenticate verifies credentials for login.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
