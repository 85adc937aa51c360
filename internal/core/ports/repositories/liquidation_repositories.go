package repositories

import (
	"context"
	"time"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

// ListLiquidationsFilter narrows a liquidation listing.
type ListLiquidationsFilter struct {
	Status     *domain.LiquidationStatus
	StoreID    *string
	EmployeeID *string
}

// LiquidationRepository persists the liquidation aggregate (header, items,
// attachments) as one transactional unit.
type LiquidationRepository interface {
	// SaveLiquidation inserts a new aggregate. Returns apperrors.ErrAlreadyLiquidated
	// if the cash advance is already referenced by another liquidation.
	SaveLiquidation(ctx context.Context, liquidation domain.Liquidation) error

	// FindLiquidationByID loads the aggregate with items and attachments.
	// Soft-deleted liquidations are reported as apperrors.ErrNotFound.
	FindLiquidationByID(ctx context.Context, liquidationID string) (*domain.Liquidation, error)

	// FindLiquidationByCashAdvanceID resolves the 1:1 advance reference.
	FindLiquidationByCashAdvanceID(ctx context.Context, cashAdvanceID string) (*domain.Liquidation, error)

	// UpdateLiquidation replaces header fields, the item set and the
	// attachment set, guarded by an optimistic version check: the write only
	// applies if the stored version equals expectedVersion, else
	// apperrors.ErrConflict.
	UpdateLiquidation(ctx context.Context, liquidation domain.Liquidation, expectedVersion int64) error

	// UpdateDecision persists a status transition and its level review fields
	// under the same optimistic version check.
	UpdateDecision(ctx context.Context, liquidation domain.Liquidation, expectedVersion int64) error

	// SoftDeleteLiquidation marks the liquidation deleted without removing rows.
	SoftDeleteLiquidation(ctx context.Context, liquidationID string, deletedBy string, deletedAt time.Time, expectedVersion int64) error

	// ListLiquidations returns a filtered page (headers only, no items) plus
	// the next page token.
	ListLiquidations(ctx context.Context, filter ListLiquidationsFilter, limit int, nextToken *string) ([]domain.Liquidation, *string, error)
}
