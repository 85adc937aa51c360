package repositories

import (
	"context"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

// CashAdvanceRepository persists cash advance requests.
type CashAdvanceRepository interface {
	SaveCashAdvance(ctx context.Context, advance domain.CashAdvance) error
	FindCashAdvanceByID(ctx context.Context, cashAdvanceID string) (*domain.CashAdvance, error)
	// UpdateCashAdvanceStatus records an approve/reject decision on the advance.
	UpdateCashAdvanceStatus(ctx context.Context, cashAdvanceID string, status domain.CashAdvanceStatus, updatedBy string) error
	ListCashAdvancesByEmployee(ctx context.Context, employeeID string, limit int, nextToken *string) ([]domain.CashAdvance, *string, error)
}
