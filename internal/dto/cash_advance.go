package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

// CreateCashAdvanceRequest requests pre-approved funds for a trip/task.
type CreateCashAdvanceRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Purpose    string          `json:"purpose" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=SUPPORT REIMBURSEMENT"`
	DateNeeded time.Time       `json:"dateNeeded" binding:"required"`
}

// DecideCashAdvanceRequest approves or rejects an advance.
type DecideCashAdvanceRequest struct {
	Action string `json:"action" binding:"required,oneof=APPROVE REJECT"`
}

// ListCashAdvancesParams pages an employee's advances.
type ListCashAdvancesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// CashAdvanceResponse is the read view of an advance.
type CashAdvanceResponse struct {
	CashAdvanceID string          `json:"cashAdvanceID"`
	EmployeeID    string          `json:"employeeID"`
	Amount        decimal.Decimal `json:"amount"`
	Purpose       string          `json:"purpose"`
	Status        string          `json:"status"`
	Type          string          `json:"type"`
	DateNeeded    time.Time       `json:"dateNeeded"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListCashAdvancesResponse is a page of advances.
type ListCashAdvancesResponse struct {
	CashAdvances []CashAdvanceResponse `json:"cashAdvances"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToCashAdvanceResponse converts a domain advance.
func ToCashAdvanceResponse(ca *domain.CashAdvance) CashAdvanceResponse {
	return CashAdvanceResponse{
		CashAdvanceID: ca.CashAdvanceID,
		EmployeeID:    ca.EmployeeID,
		Amount:        ca.Amount,
		Purpose:       ca.Purpose,
		Status:        string(ca.Status),
		Type:          string(ca.Type),
		DateNeeded:    ca.DateNeeded,
		CreatedAt:     ca.CreatedAt,
	}
}
