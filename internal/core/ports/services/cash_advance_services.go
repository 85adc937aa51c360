package services

import (
	"context"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
	"github.com/hroffice/hroffice_backend/internal/dto"
)

// CashAdvanceSvcFacade exposes cash advance use cases.
type CashAdvanceSvcFacade interface {
	CreateCashAdvance(ctx context.Context, req dto.CreateCashAdvanceRequest, actorID string) (*domain.CashAdvance, error)
	// DecideCashAdvance approves or rejects a pending advance.
	DecideCashAdvance(ctx context.Context, cashAdvanceID string, approve bool, actorID string) (*domain.CashAdvance, error)
	GetCashAdvance(ctx context.Context, cashAdvanceID string, actorID string) (*domain.CashAdvance, error)
	ListCashAdvances(ctx context.Context, employeeID string, params dto.ListCashAdvancesParams, actorID string) (*dto.ListCashAdvancesResponse, error)
}
