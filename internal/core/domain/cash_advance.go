package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAdvanceStatus indicates the state of a cash advance request.
type CashAdvanceStatus string

const (
	CashAdvancePending  CashAdvanceStatus = "PENDING"
	CashAdvanceApproved CashAdvanceStatus = "APPROVED"
	CashAdvanceRejected CashAdvanceStatus = "REJECTED"
)

// CashAdvanceType classifies what the advance was issued for. Only SUPPORT
// and REIMBURSEMENT advances can be liquidated.
type CashAdvanceType string

const (
	CashAdvanceSupport       CashAdvanceType = "SUPPORT"
	CashAdvanceReimbursement CashAdvanceType = "REIMBURSEMENT"
)

// CashAdvance represents pre-approved funds issued to an employee, later
// reconciled via a liquidation. Read-only to the liquidation core once referenced.
type CashAdvance struct {
	CashAdvanceID string            `json:"cashAdvanceID"` // Primary Key (UUID)
	EmployeeID    string            `json:"employeeID"`    // Owning employee
	Amount        decimal.Decimal   `json:"amount"`        // PHP, 2dp
	Purpose       string            `json:"purpose"`
	Status        CashAdvanceStatus `json:"status"`
	Type          CashAdvanceType   `json:"type"`
	DateNeeded    time.Time         `json:"dateNeeded"`
	AuditFields
}

// Liquidatable reports whether this advance is eligible to be liquidated:
// it must be approved and of a liquidatable type.
func (ca *CashAdvance) Liquidatable() bool {
	if ca.Status != CashAdvanceApproved {
		return false
	}
	return ca.Type == CashAdvanceSupport || ca.Type == CashAdvanceReimbursement
}
