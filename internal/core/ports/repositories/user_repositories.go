package repositories

import (
	"context"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

// UserRepository persists employee accounts.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// HasAnyUser reports whether at least one account exists, used for bootstrap.
	HasAnyUser(ctx context.Context) (bool, error)
}
