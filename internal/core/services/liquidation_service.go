package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portsrepo "github.com/hroffice/hroffice_backend/internal/core/ports/repositories"
	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	portsstorage "github.com/hroffice/hroffice_backend/internal/core/ports/storage"
	"github.com/hroffice/hroffice_backend/internal/dto"
	"github.com/hroffice/hroffice_backend/internal/middleware"
)

const (
	// signedURLExpiry is how long receipt download links stay valid.
	signedURLExpiry = 15 * time.Minute

	// maxReceiptSize caps a single receipt upload.
	maxReceiptSize = 10 << 20 // 10 MiB

	// decideRetries is how many times a decide is attempted; the single
	// extra attempt covers one optimistic-concurrency collision.
	decideRetries = 2
)

// liquidationService implements the file/edit/decide use cases over the
// liquidation aggregate, coordinating the permission, storage and persistence
// collaborators at its boundary.
type liquidationService struct {
	liquidationRepo portsrepo.LiquidationRepository
	advanceRepo     portsrepo.CashAdvanceRepository
	authzSvc        portssvc.AuthzSvcFacade
	receipts        portsstorage.ReceiptStorage
}

// NewLiquidationService creates a new LiquidationService.
func NewLiquidationService(liquidationRepo portsrepo.LiquidationRepository, advanceRepo portsrepo.CashAdvanceRepository, authzSvc portssvc.AuthzSvcFacade, receipts portsstorage.ReceiptStorage) portssvc.LiquidationSvcFacade {
	return &liquidationService{
		liquidationRepo: liquidationRepo,
		advanceRepo:     advanceRepo,
		authzSvc:        authzSvc,
		receipts:        receipts,
	}
}

var _ portssvc.LiquidationSvcFacade = (*liquidationService)(nil)

// authorizeManage allows the owner, or anyone holding manage_liquidation.
func (s *liquidationService) authorizeManage(ctx context.Context, actorID, ownerID string) error {
	if actorID == ownerID {
		return nil
	}
	return s.authzSvc.HasCapability(ctx, actorID, domain.CapManageLiquidation)
}

// authorizeView additionally allows approvers of either level to read.
func (s *liquidationService) authorizeView(ctx context.Context, actorID, ownerID string) error {
	if actorID == ownerID {
		return nil
	}
	for _, cap := range []domain.Capability{domain.CapManageLiquidation, domain.CapApproveLevel1, domain.CapApproveLevel2} {
		if err := s.authzSvc.HasCapability(ctx, actorID, cap); err == nil {
			return nil
		}
	}
	// Obscure existence from unrelated actors.
	return apperrors.ErrNotFound
}

// buildItems converts request lines to fresh domain items. IDs are assigned
// here so attachment instructions can be resolved against them by position.
func buildItems(reqs []dto.LiquidationItemRequest, actorID string, now time.Time) []domain.LiquidationItem {
	items := make([]domain.LiquidationItem, len(reqs))
	for i, r := range reqs {
		items[i] = domain.LiquidationItem{
			ItemID:          uuid.NewString(),
			ExpenseDate:     r.ExpenseDate,
			FromDestination: r.FromDestination,
			ToDestination:   r.ToDestination,
			Jeep:            r.Jeep,
			Bus:             r.Bus,
			FxVan:           r.FxVan,
			Gas:             r.Gas,
			Toll:            r.Toll,
			Meals:           r.Meals,
			Lodging:         r.Lodging,
			Others:          r.Others,
			Remarks:         r.Remarks,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}
	return items
}

// resolveReceipts turns upload references into ledger entries, binding
// item-level ones to the item at the given position. Every referenced object
// must already exist in storage: metadata is only recorded after the upload
// is confirmed, never before.
func (s *liquidationService) resolveReceipts(ctx context.Context, reqs []dto.NewReceiptRequest, items []domain.LiquidationItem) ([]domain.NewReceipt, error) {
	receipts := make([]domain.NewReceipt, len(reqs))
	for i, r := range reqs {
		info, err := s.receipts.StatObject(ctx, r.FileRef)
		if err != nil {
			return nil, fmt.Errorf("%w: receipt object %s is not in storage", apperrors.ErrValidation, r.FileRef)
		}
		nr := domain.NewReceipt{
			FileName: r.FileName,
			FileType: r.FileType,
			FileSize: info.Size,
			FileRef:  r.FileRef,
		}
		if r.ItemIndex != nil {
			idx := *r.ItemIndex
			if idx < 0 || idx >= len(items) {
				return nil, fmt.Errorf("%w: attachment item index %d out of range", apperrors.ErrValidation, idx)
			}
			itemID := items[idx].ItemID
			nr.ItemID = &itemID
		}
		receipts[i] = nr
	}
	return receipts, nil
}

// FileLiquidation creates a liquidation against an approved cash advance.
func (s *liquidationService) FileLiquidation(ctx context.Context, req dto.FileLiquidationRequest, actorID string) (*domain.Liquidation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	advance, err := s.advanceRepo.FindCashAdvanceByID(ctx, req.CashAdvanceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find cash advance for filing", slog.String("error", err.Error()), slog.String("cash_advance_id", req.CashAdvanceID))
		}
		return nil, err
	}

	if err := s.authorizeManage(ctx, actorID, advance.EmployeeID); err != nil {
		logger.Warn("Authorization failed for FileLiquidation", slog.String("actor_id", actorID), slog.String("cash_advance_id", req.CashAdvanceID))
		return nil, err
	}

	// 1:1 guard: a cash advance liquidates to at most one liquidation. The
	// repository enforces this again with a unique constraint; this check
	// just produces the friendlier error first.
	if existing, err := s.liquidationRepo.FindLiquidationByCashAdvanceID(ctx, req.CashAdvanceID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: cash advance %s already has liquidation %s", apperrors.ErrAlreadyLiquidated, req.CashAdvanceID, existing.LiquidationID)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing liquidation: %w", err)
	}

	now := time.Now().UTC()
	items := buildItems(req.Items, actorID, now)

	liquidation, err := domain.NewLiquidation(*advance, req.StoreID, req.TicketID, req.LiquidationDate, items, req.Remarks, actorID, now)
	if err != nil {
		return nil, err
	}

	if len(req.Attachments) > 0 {
		newReceipts, err := s.resolveReceipts(ctx, req.Attachments, liquidation.Items)
		if err != nil {
			return nil, err
		}
		attachments, _, err := domain.ReconcileAttachments(liquidation.LiquidationID, nil, domain.AttachmentInstructions{Add: newReceipts}, liquidation.ItemIDSet(), actorID, now)
		if err != nil {
			return nil, err
		}
		liquidation.Attachments = attachments
	}

	if err := liquidation.CheckInvariants(); err != nil {
		return nil, err
	}

	if err := s.liquidationRepo.SaveLiquidation(ctx, *liquidation); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyLiquidated) {
			logger.Error("Failed to save liquidation", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Liquidation filed",
		slog.String("liquidation_id", liquidation.LiquidationID),
		slog.String("cash_advance_id", liquidation.CashAdvanceID),
		slog.String("total_amount", liquidation.TotalAmount.String()))
	return liquidation, nil
}

// EditLiquidation replaces the item set and reconciles the attachment set.
func (s *liquidationService) EditLiquidation(ctx context.Context, liquidationID string, req dto.EditLiquidationRequest, actorID string) (*domain.Liquidation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	liquidation, err := s.liquidationRepo.FindLiquidationByID(ctx, liquidationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManage(ctx, actorID, liquidation.EmployeeID); err != nil {
		logger.Warn("Authorization failed for EditLiquidation", slog.String("actor_id", actorID), slog.String("liquidation_id", liquidationID))
		return nil, err
	}

	now := time.Now().UTC()
	newItems := buildItems(req.Items, actorID, now)

	newReceipts, err := s.resolveReceipts(ctx, req.Attachments.Add, newItems)
	if err != nil {
		return nil, err
	}
	instr := domain.AttachmentInstructions{
		KeepIDs:   req.Attachments.KeepIDs,
		RemoveIDs: req.Attachments.RemoveIDs,
		Add:       newReceipts,
	}

	removed, err := liquidation.ApplyEdit(newItems, instr, req.Remarks, actorID, now)
	if err != nil {
		return nil, err
	}
	if err := liquidation.CheckInvariants(); err != nil {
		return nil, err
	}

	expectedVersion := liquidation.Version
	if err := s.liquidationRepo.UpdateLiquidation(ctx, *liquidation, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent modification detected on edit", slog.String("liquidation_id", liquidationID))
		} else {
			logger.Error("Failed to update liquidation", slog.String("error", err.Error()), slog.String("liquidation_id", liquidationID))
		}
		return nil, err
	}
	liquidation.Version = expectedVersion + 1

	// Storage cleanup happens only after the metadata commit is durable.
	// Failures here leave unreferenced objects behind, never broken references.
	for _, att := range removed {
		if err := s.receipts.DeleteObject(ctx, att.FileRef); err != nil {
			logger.Warn("Failed to delete removed receipt object", slog.String("file_ref", att.FileRef), slog.String("error", err.Error()))
		}
	}

	logger.Info("Liquidation edited", slog.String("liquidation_id", liquidationID), slog.Int("items", len(liquidation.Items)), slog.Int("attachments_removed", len(removed)))
	return liquidation, nil
}

// capabilityForLevel maps an approval level to its required capability.
func capabilityForLevel(level domain.ApprovalLevel) (domain.Capability, error) {
	switch level {
	case domain.ApprovalLevel1:
		return domain.CapApproveLevel1, nil
	case domain.ApprovalLevel2:
		return domain.CapApproveLevel2, nil
	default:
		return "", fmt.Errorf("%w: unknown approval level %d", apperrors.ErrValidation, level)
	}
}

// DecideLiquidation applies an approve/reject action at one level. The
// read-decide-write cycle is retried once on an optimistic-concurrency
// conflict; all other failures surface immediately.
func (s *liquidationService) DecideLiquidation(ctx context.Context, liquidationID string, level int, action string, actorID, comment string) (*domain.Liquidation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	approvalLevel := domain.ApprovalLevel(level)
	decisionAction := domain.DecisionAction(action)

	capability, err := capabilityForLevel(approvalLevel)
	if err != nil {
		return nil, err
	}
	if err := s.authzSvc.HasCapability(ctx, actorID, capability); err != nil {
		logger.Warn("Authorization failed for DecideLiquidation", slog.String("actor_id", actorID), slog.Int("level", level))
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < decideRetries; attempt++ {
		liquidation, err := s.liquidationRepo.FindLiquidationByID(ctx, liquidationID)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		if err := liquidation.Decide(approvalLevel, decisionAction, actorID, comment, now); err != nil {
			return nil, err
		}

		if err := s.liquidationRepo.UpdateDecision(ctx, *liquidation, liquidation.Version); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				lastErr = err
				logger.Warn("Decision write conflicted, retrying", slog.String("liquidation_id", liquidationID), slog.Int("attempt", attempt+1))
				continue
			}
			logger.Error("Failed to persist decision", slog.String("error", err.Error()), slog.String("liquidation_id", liquidationID))
			return nil, err
		}
		liquidation.Version++

		logger.Info("Liquidation decided",
			slog.String("liquidation_id", liquidationID),
			slog.Int("level", level),
			slog.String("action", action),
			slog.String("status", string(liquidation.Status)))
		return liquidation, nil
	}
	return nil, lastErr
}

// GetLiquidation returns the aggregate with signed receipt URLs.
func (s *liquidationService) GetLiquidation(ctx context.Context, liquidationID string, actorID string) (*dto.LiquidationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	liquidation, err := s.liquidationRepo.FindLiquidationByID(ctx, liquidationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, actorID, liquidation.EmployeeID); err != nil {
		return nil, err
	}

	// Never trust a persisted total without recomputing from items.
	liquidation.RecomputeDerived()

	resp := dto.ToLiquidationResponse(liquidation)
	for i := range resp.Attachments {
		url, err := s.receipts.SignedURL(ctx, liquidation.Attachments[i].FileRef, signedURLExpiry)
		if err != nil {
			logger.Warn("Failed to sign receipt URL", slog.String("file_ref", liquidation.Attachments[i].FileRef), slog.String("error", err.Error()))
			continue
		}
		resp.Attachments[i].URL = url
	}
	return &resp, nil
}

// ListLiquidations returns a filtered page of liquidation headers. Actors
// without manage_liquidation see only their own filings.
func (s *liquidationService) ListLiquidations(ctx context.Context, params dto.ListLiquidationsParams, actorID string) (*dto.ListLiquidationsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ListLiquidationsFilter{StoreID: params.StoreID, EmployeeID: params.EmployeeID}
	if params.Status != nil {
		status := domain.LiquidationStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}

	if err := s.authzSvc.HasCapability(ctx, actorID, domain.CapManageLiquidation); err != nil {
		if !errors.Is(err, apperrors.ErrForbidden) {
			// Approvers still need the full queue.
			if errL1 := s.authzSvc.HasCapability(ctx, actorID, domain.CapApproveLevel1); errL1 != nil {
				return nil, err
			}
		} else if errL1 := s.authzSvc.HasCapability(ctx, actorID, domain.CapApproveLevel1); errL1 != nil {
			if errL2 := s.authzSvc.HasCapability(ctx, actorID, domain.CapApproveLevel2); errL2 != nil {
				// Plain employees are scoped to their own filings.
				filter.EmployeeID = &actorID
			}
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	liquidations, nextToken, err := s.liquidationRepo.ListLiquidations(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list liquidations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve liquidations: %w", err)
	}

	responses := make([]dto.LiquidationResponse, len(liquidations))
	for i := range liquidations {
		responses[i] = dto.ToLiquidationResponse(&liquidations[i])
	}

	logger.Info("Liquidations listed", slog.Int("count", len(liquidations)))
	return &dto.ListLiquidationsResponse{Liquidations: responses, NextToken: nextToken}, nil
}

// DeleteLiquidation soft-deletes a pending liquidation.
func (s *liquidationService) DeleteLiquidation(ctx context.Context, liquidationID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	liquidation, err := s.liquidationRepo.FindLiquidationByID(ctx, liquidationID)
	if err != nil {
		return err
	}
	if err := s.authorizeManage(ctx, actorID, liquidation.EmployeeID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := liquidation.MarkDeleted(actorID, now); err != nil {
		return err
	}

	if err := s.liquidationRepo.SoftDeleteLiquidation(ctx, liquidationID, actorID, now, liquidation.Version); err != nil {
		logger.Error("Failed to soft delete liquidation", slog.String("error", err.Error()), slog.String("liquidation_id", liquidationID))
		return err
	}

	logger.Info("Liquidation deleted", slog.String("liquidation_id", liquidationID))
	return nil
}

// UploadReceipt stores receipt bytes and returns the handle to reference in a
// later file/edit request.
func (s *liquidationService) UploadReceipt(ctx context.Context, content []byte, fileName, contentType string, actorID string) (*dto.UploadReceiptResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(content) == 0 {
		return nil, fmt.Errorf("%w: receipt file is empty", apperrors.ErrValidation)
	}
	if len(content) > maxReceiptSize {
		return nil, fmt.Errorf("%w: receipt file exceeds %d bytes", apperrors.ErrValidation, maxReceiptSize)
	}

	info, err := s.receipts.PutObject(ctx, content, portsstorage.ObjectMetadata{FileName: fileName, ContentType: contentType})
	if err != nil {
		logger.Error("Failed to store receipt", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	logger.Info("Receipt uploaded", slog.String("file_ref", info.FileRef), slog.Int64("size", info.Size))
	return &dto.UploadReceiptResponse{
		FileRef:  info.FileRef,
		FileName: fileName,
		FileType: info.ContentType,
		FileSize: info.Size,
	}, nil
}
