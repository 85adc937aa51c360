package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/utils/reconcile"
)

// Liquidation is the expense report that reconciles a cash advance against
// itemized spending. It owns its items and attachment metadata and routes
// through the two-level approval gate. One cash advance liquidates to at
// most one liquidation.
type Liquidation struct {
	LiquidationID   string            `json:"liquidationID"` // Primary Key (UUID)
	CashAdvanceID   string            `json:"cashAdvanceID"` // 1:1 reference
	EmployeeID      string            `json:"employeeID"`    // Filing employee
	StoreID         string            `json:"storeID"`
	TicketID        *string           `json:"ticketID,omitempty"`
	LiquidationDate time.Time         `json:"liquidationDate"`
	Remarks         string            `json:"remarks"`
	Status          LiquidationStatus `json:"status"`

	// Captured from the referenced advance so derived amounts can always be
	// recomputed without a join.
	CashAdvanceAmount decimal.Decimal `json:"cashAdvanceAmount"`

	// Derived amounts. Recomputed from Items on every mutation via
	// RecomputeDerived; persisted values are never trusted without that.
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ReturnToCompany decimal.Decimal `json:"returnToCompany"`
	Reimbursement   decimal.Decimal `json:"reimbursement"`

	Items       []LiquidationItem `json:"items"`
	Attachments []Attachment      `json:"attachments"`

	Level1 *LevelReview `json:"level1,omitempty"`
	Level2 *LevelReview `json:"level2,omitempty"`

	// Version backs the optimistic-concurrency check on edit/decide.
	Version   int64      `json:"version"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	AuditFields
}

// NewLiquidation files a liquidation against an approved, eligible cash
// advance. Status starts at PENDING.
func NewLiquidation(advance CashAdvance, storeID string, ticketID *string, date time.Time, items []LiquidationItem, remarks, createdBy string, now time.Time) (*Liquidation, error) {
	if !advance.Liquidatable() {
		return nil, fmt.Errorf("%w: cash advance %s is not approved for liquidation (status %s, type %s)",
			apperrors.ErrValidation, advance.CashAdvanceID, advance.Status, advance.Type)
	}

	l := &Liquidation{
		LiquidationID:     uuid.NewString(),
		CashAdvanceID:     advance.CashAdvanceID,
		EmployeeID:        advance.EmployeeID,
		StoreID:           storeID,
		TicketID:          ticketID,
		LiquidationDate:   date,
		Remarks:           remarks,
		Status:            LiquidationPending,
		CashAdvanceAmount: advance.Amount,
		Version:           1,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := l.adoptItems(items, createdBy, now); err != nil {
		return nil, err
	}
	l.RecomputeDerived()
	return l, nil
}

// adoptItems validates a replacement item set and takes ownership of it.
func (l *Liquidation) adoptItems(items []LiquidationItem, actorID string, now time.Time) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: a liquidation requires at least one expense item", apperrors.ErrValidation)
	}
	hasExpense := false
	adopted := make([]LiquidationItem, len(items))
	for i := range items {
		item := items[i]
		if err := item.Validate(); err != nil {
			return err
		}
		if item.ItemID == "" {
			item.ItemID = uuid.NewString()
		}
		item.LiquidationID = l.LiquidationID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
			item.CreatedBy = actorID
		}
		item.LastUpdatedAt = now
		item.LastUpdatedBy = actorID
		if item.HasExpense() {
			hasExpense = true
		}
		adopted[i] = item
	}
	if !hasExpense {
		return fmt.Errorf("%w: at least one item must carry a positive expense", apperrors.ErrValidation)
	}
	l.Items = adopted
	return nil
}

// ItemIDSet returns the IDs of the current item set.
func (l *Liquidation) ItemIDSet() map[string]struct{} {
	set := make(map[string]struct{}, len(l.Items))
	for _, item := range l.Items {
		set[item.ItemID] = struct{}{}
	}
	return set
}

// RecomputeDerived recalculates TotalAmount, ReturnToCompany and
// Reimbursement from the current items. Called after every mutation; a stale
// cached value is never trusted.
func (l *Liquidation) RecomputeDerived() {
	itemTotals := make([]decimal.Decimal, len(l.Items))
	for i := range l.Items {
		itemTotals[i] = l.Items[i].Total()
	}
	rec := reconcile.Totals(l.CashAdvanceAmount, itemTotals)
	l.TotalAmount = rec.Total
	l.ReturnToCompany = rec.ReturnToCompany
	l.Reimbursement = rec.Reimbursement
}

// ApplyEdit fully replaces the item set (replace, not merge: old items are
// discarded and new ones created fresh) and reconciles the attachment set
// against the new items. Legal only while PENDING. The returned slice holds
// the attachments whose metadata was removed, so the caller can delete their
// storage objects once the edit is durable.
func (l *Liquidation) ApplyEdit(newItems []LiquidationItem, instr AttachmentInstructions, remarks string, actorID string, now time.Time) ([]Attachment, error) {
	if l.Status != LiquidationPending {
		return nil, fmt.Errorf("%w: liquidation %s is %s, only pending liquidations can be edited", apperrors.ErrInvalidState, l.LiquidationID, l.Status)
	}

	// Replace-not-merge: callers construct the new items fresh (new IDs);
	// the old set is discarded wholesale.
	if err := l.adoptItems(newItems, actorID, now); err != nil {
		return nil, err
	}

	final, removed, err := ReconcileAttachments(l.LiquidationID, l.Attachments, instr, l.ItemIDSet(), actorID, now)
	if err != nil {
		return nil, err
	}
	l.Attachments = final
	l.Remarks = remarks
	l.LastUpdatedAt = now
	l.LastUpdatedBy = actorID
	l.RecomputeDerived()
	return removed, nil
}

// MarkDeleted soft-deletes the liquidation. Only pending liquidations can be
// deleted; anything with review history is kept for audit.
func (l *Liquidation) MarkDeleted(actorID string, now time.Time) error {
	if l.Status != LiquidationPending {
		return fmt.Errorf("%w: liquidation %s is %s and cannot be deleted", apperrors.ErrInvalidState, l.LiquidationID, l.Status)
	}
	l.DeletedAt = &now
	l.LastUpdatedAt = now
	l.LastUpdatedBy = actorID
	return nil
}

// CheckInvariants verifies the aggregate's structural invariants. Repositories
// call this before persisting as a safety net over construction-time checks.
func (l *Liquidation) CheckInvariants() error {
	if !l.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, l.Status)
	}
	if len(l.Items) == 0 {
		return fmt.Errorf("%w: item set must not be empty", apperrors.ErrValidation)
	}
	if l.ReturnToCompany.IsPositive() && l.Reimbursement.IsPositive() {
		return fmt.Errorf("%w: return_to_company and reimbursement cannot both be nonzero", apperrors.ErrValidation)
	}
	if l.Level2 != nil && l.Level1 == nil {
		return fmt.Errorf("%w: level-2 review recorded without level-1", apperrors.ErrValidation)
	}
	itemIDs := l.ItemIDSet()
	for _, att := range l.Attachments {
		if att.IsItemLevel() {
			if att.ItemID == nil {
				return fmt.Errorf("%w: item-level attachment %s has no item reference", apperrors.ErrInvalidBinding, att.AttachmentID)
			}
			if _, ok := itemIDs[*att.ItemID]; !ok {
				return fmt.Errorf("%w: attachment %s references item %s outside the current set", apperrors.ErrInvalidBinding, att.AttachmentID, *att.ItemID)
			}
		}
	}
	return nil
}
