package services

import (
	"context"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
	"github.com/hroffice/hroffice_backend/internal/dto"
)

// LiquidationSvcFacade exposes the liquidation use cases to transport bindings.
// All operations are request-scoped; every failure is a typed apperrors value
// recoverable at the caller.
type LiquidationSvcFacade interface {
	// FileLiquidation creates a liquidation against an approved cash advance
	// (at most one per advance).
	FileLiquidation(ctx context.Context, req dto.FileLiquidationRequest, actorID string) (*domain.Liquidation, error)

	// EditLiquidation replaces the item set and reconciles attachments.
	// Legal only while the liquidation is pending.
	EditLiquidation(ctx context.Context, liquidationID string, req dto.EditLiquidationRequest, actorID string) (*domain.Liquidation, error)

	// DecideLiquidation applies an approve/reject action at the given level.
	// Retries once internally on an optimistic-concurrency conflict.
	DecideLiquidation(ctx context.Context, liquidationID string, level int, action string, actorID, comment string) (*domain.Liquidation, error)

	// GetLiquidation returns the aggregate with signed receipt URLs resolved.
	GetLiquidation(ctx context.Context, liquidationID string, actorID string) (*dto.LiquidationResponse, error)

	// ListLiquidations returns a filtered, token-paginated page of headers.
	ListLiquidations(ctx context.Context, params dto.ListLiquidationsParams, actorID string) (*dto.ListLiquidationsResponse, error)

	// DeleteLiquidation soft-deletes a pending liquidation.
	DeleteLiquidation(ctx context.Context, liquidationID string, actorID string) error

	// UploadReceipt stores receipt bytes and returns the storage handle to be
	// referenced by a later file/edit request (upload-then-record ordering).
	UploadReceipt(ctx context.Context, content []byte, fileName, contentType string, actorID string) (*dto.UploadReceiptResponse, error)
}
