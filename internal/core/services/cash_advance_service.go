package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portsrepo "github.com/hroffice/hroffice_backend/internal/core/ports/repositories"
	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	"github.com/hroffice/hroffice_backend/internal/dto"
	"github.com/hroffice/hroffice_backend/internal/middleware"
)

// cashAdvanceService provides cash advance operations.
type cashAdvanceService struct {
	advanceRepo portsrepo.CashAdvanceRepository
	authzSvc    portssvc.AuthzSvcFacade
}

// NewCashAdvanceService creates a new CashAdvanceService.
func NewCashAdvanceService(advanceRepo portsrepo.CashAdvanceRepository, authzSvc portssvc.AuthzSvcFacade) portssvc.CashAdvanceSvcFacade {
	return &cashAdvanceService{advanceRepo: advanceRepo, authzSvc: authzSvc}
}

var _ portssvc.CashAdvanceSvcFacade = (*cashAdvanceService)(nil)

// CreateCashAdvance requests an advance for the acting employee.
func (s *cashAdvanceService) CreateCashAdvance(ctx context.Context, req dto.CreateCashAdvanceRequest, actorID string) (*domain.CashAdvance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: advance amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	advance := domain.CashAdvance{
		CashAdvanceID: uuid.NewString(),
		EmployeeID:    actorID,
		Amount:        req.Amount.Round(2),
		Purpose:       req.Purpose,
		Status:        domain.CashAdvancePending,
		Type:          domain.CashAdvanceType(req.Type),
		DateNeeded:    req.DateNeeded,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.advanceRepo.SaveCashAdvance(ctx, advance); err != nil {
		logger.Error("Failed to save cash advance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save cash advance: %w", err)
	}

	logger.Info("Cash advance created", slog.String("cash_advance_id", advance.CashAdvanceID), slog.String("amount", advance.Amount.String()))
	return &advance, nil
}

// DecideCashAdvance approves or rejects a pending advance.
func (s *cashAdvanceService) DecideCashAdvance(ctx context.Context, cashAdvanceID string, approve bool, actorID string) (*domain.CashAdvance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authzSvc.HasCapability(ctx, actorID, domain.CapApproveCashAdv); err != nil {
		return nil, err
	}

	advance, err := s.advanceRepo.FindCashAdvanceByID(ctx, cashAdvanceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find cash advance", slog.String("error", err.Error()), slog.String("cash_advance_id", cashAdvanceID))
		}
		return nil, err
	}

	if advance.Status != domain.CashAdvancePending {
		return nil, fmt.Errorf("%w: cash advance %s is already %s", apperrors.ErrInvalidState, cashAdvanceID, advance.Status)
	}

	status := domain.CashAdvanceApproved
	if !approve {
		status = domain.CashAdvanceRejected
	}
	if err := s.advanceRepo.UpdateCashAdvanceStatus(ctx, cashAdvanceID, status, actorID); err != nil {
		logger.Error("Failed to update cash advance status", slog.String("error", err.Error()), slog.String("cash_advance_id", cashAdvanceID))
		return nil, fmt.Errorf("failed to update cash advance: %w", err)
	}

	advance.Status = status
	logger.Info("Cash advance decided", slog.String("cash_advance_id", cashAdvanceID), slog.String("status", string(status)))
	return advance, nil
}

// GetCashAdvance returns an advance visible to its owner or an approver.
func (s *cashAdvanceService) GetCashAdvance(ctx context.Context, cashAdvanceID string, actorID string) (*domain.CashAdvance, error) {
	advance, err := s.advanceRepo.FindCashAdvanceByID(ctx, cashAdvanceID)
	if err != nil {
		return nil, err
	}
	if advance.EmployeeID != actorID {
		if err := s.authzSvc.HasCapability(ctx, actorID, domain.CapApproveCashAdv); err != nil {
			// Obscure existence from actors with no relation to the advance.
			return nil, apperrors.ErrNotFound
		}
	}
	return advance, nil
}

// ListCashAdvances pages an employee's advances. Employees may list only
// their own; approvers may list anyone's.
func (s *cashAdvanceService) ListCashAdvances(ctx context.Context, employeeID string, params dto.ListCashAdvancesParams, actorID string) (*dto.ListCashAdvancesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if employeeID != actorID {
		if err := s.authzSvc.HasCapability(ctx, actorID, domain.CapApproveCashAdv); err != nil {
			return nil, err
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	advances, nextToken, err := s.advanceRepo.ListCashAdvancesByEmployee(ctx, employeeID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list cash advances", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve cash advances: %w", err)
	}

	responses := make([]dto.CashAdvanceResponse, len(advances))
	for i := range advances {
		responses[i] = dto.ToCashAdvanceResponse(&advances[i])
	}
	return &dto.ListCashAdvancesResponse{CashAdvances: responses, NextToken: nextToken}, nil
}
