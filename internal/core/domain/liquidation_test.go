package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func strPtr(s string) *string { return &s }

func approvedAdvance(amount string) domain.CashAdvance {
	return domain.CashAdvance{
		CashAdvanceID: uuid.NewString(),
		EmployeeID:    uuid.NewString(),
		Amount:        dec(amount),
		Status:        domain.CashAdvanceApproved,
		Type:          domain.CashAdvanceSupport,
	}
}

func itemWith(gas, meals string) domain.LiquidationItem {
	return domain.LiquidationItem{
		ExpenseDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Gas:         dec(gas),
		Meals:       dec(meals),
	}
}

func mustFile(t *testing.T, advance domain.CashAdvance, items []domain.LiquidationItem) *domain.Liquidation {
	t.Helper()
	l, err := domain.NewLiquidation(advance, "STORE-01", nil, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), items, "", advance.EmployeeID, time.Now().UTC())
	assert.NoError(t, err)
	return l
}

func TestNewLiquidation_UnderspendReturnsToCompany(t *testing.T) {
	advance := approvedAdvance("5000.00")
	items := []domain.LiquidationItem{itemWith("3000.00", "0"), itemWith("0", "1500.00")}

	l := mustFile(t, advance, items)

	assert.Equal(t, domain.LiquidationPending, l.Status)
	assert.True(t, dec("4500.00").Equal(l.TotalAmount))
	assert.True(t, dec("500.00").Equal(l.ReturnToCompany))
	assert.True(t, l.Reimbursement.IsZero())
	assert.Equal(t, int64(1), l.Version)
	assert.Equal(t, advance.EmployeeID, l.EmployeeID)
	assert.NoError(t, l.CheckInvariants())
}

func TestNewLiquidation_OverspendReimburses(t *testing.T) {
	advance := approvedAdvance("3000.00")
	items := []domain.LiquidationItem{itemWith("3200.00", "0")}

	l := mustFile(t, advance, items)

	assert.True(t, dec("200.00").Equal(l.Reimbursement))
	assert.True(t, l.ReturnToCompany.IsZero())
	assert.NoError(t, l.CheckInvariants())
}

func TestNewLiquidation_RejectsIneligibleAdvance(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.CashAdvance)
	}{
		{"pending advance", func(ca *domain.CashAdvance) { ca.Status = domain.CashAdvancePending }},
		{"rejected advance", func(ca *domain.CashAdvance) { ca.Status = domain.CashAdvanceRejected }},
		{"non-liquidatable type", func(ca *domain.CashAdvance) { ca.Type = domain.CashAdvanceType("SALARY_LOAN") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance := approvedAdvance("1000.00")
			tt.mutate(&advance)
			_, err := domain.NewLiquidation(advance, "STORE-01", nil, time.Now().UTC(), []domain.LiquidationItem{itemWith("100.00", "0")}, "", "actor", time.Now().UTC())
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestNewLiquidation_ItemValidation(t *testing.T) {
	advance := approvedAdvance("1000.00")

	_, err := domain.NewLiquidation(advance, "STORE-01", nil, time.Now().UTC(), nil, "", "actor", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrValidation, "empty item set must fail")

	_, err = domain.NewLiquidation(advance, "STORE-01", nil, time.Now().UTC(), []domain.LiquidationItem{itemWith("0", "0")}, "", "actor", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrValidation, "all-zero items must fail")

	negative := itemWith("100.00", "0")
	negative.Toll = dec("-5.00")
	_, err = domain.NewLiquidation(advance, "STORE-01", nil, time.Now().UTC(), []domain.LiquidationItem{negative}, "", "actor", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrValidation, "negative category must fail")
	assert.Contains(t, err.Error(), "toll")
}

func TestApplyEdit_ReplacesItemsAndRecomputes(t *testing.T) {
	advance := approvedAdvance("5000.00")
	l := mustFile(t, advance, []domain.LiquidationItem{itemWith("3000.00", "0")})
	oldItemID := l.Items[0].ItemID

	newItems := []domain.LiquidationItem{
		{ItemID: uuid.NewString(), ExpenseDate: time.Now().UTC(), Lodging: dec("5200.00")},
	}
	removed, err := l.ApplyEdit(newItems, domain.AttachmentInstructions{}, "updated", "actor", time.Now().UTC())

	assert.NoError(t, err)
	assert.Empty(t, removed)
	assert.Len(t, l.Items, 1)
	assert.NotEqual(t, oldItemID, l.Items[0].ItemID, "item set must be replaced, not merged")
	assert.True(t, dec("200.00").Equal(l.Reimbursement))
	assert.True(t, l.ReturnToCompany.IsZero())
	assert.Equal(t, "updated", l.Remarks)
}

func TestApplyEdit_OnlyWhilePending(t *testing.T) {
	advance := approvedAdvance("1000.00")
	for _, status := range []domain.LiquidationStatus{domain.LiquidationLevel1Approved, domain.LiquidationApproved, domain.LiquidationRejected} {
		l := mustFile(t, advance, []domain.LiquidationItem{itemWith("100.00", "0")})
		l.Status = status
		_, err := l.ApplyEdit([]domain.LiquidationItem{itemWith("200.00", "0")}, domain.AttachmentInstructions{}, "", "actor", time.Now().UTC())
		assert.ErrorIs(t, err, apperrors.ErrInvalidState, "status %s must block edits", status)
	}
}

func TestApplyEdit_DanglingItemAttachmentBlocksEdit(t *testing.T) {
	advance := approvedAdvance("1000.00")
	l := mustFile(t, advance, []domain.LiquidationItem{itemWith("500.00", "0")})
	boundItemID := l.Items[0].ItemID

	now := time.Now().UTC()
	atts, _, err := domain.ReconcileAttachments(l.LiquidationID, nil, domain.AttachmentInstructions{
		Add: []domain.NewReceipt{{FileName: "gas.jpg", FileRef: "obj-1", ItemID: &boundItemID}},
	}, l.ItemIDSet(), "actor", now)
	assert.NoError(t, err)
	l.Attachments = atts

	// Replacing the items strands the bound receipt unless it is removed.
	newItems := []domain.LiquidationItem{itemWith("600.00", "0")}
	_, err = l.ApplyEdit(newItems, domain.AttachmentInstructions{}, "", "actor", now)
	assert.ErrorIs(t, err, apperrors.ErrDanglingAttachment)

	// An explicit removal clears the way and reports the object for cleanup.
	removed, err := l.ApplyEdit(newItems, domain.AttachmentInstructions{
		RemoveIDs: []string{atts[0].AttachmentID},
	}, "", "actor", now)
	assert.NoError(t, err)
	assert.Len(t, removed, 1)
	assert.Equal(t, "obj-1", removed[0].FileRef)
	assert.Empty(t, l.Attachments)
}

func TestMarkDeleted(t *testing.T) {
	advance := approvedAdvance("1000.00")
	l := mustFile(t, advance, []domain.LiquidationItem{itemWith("100.00", "0")})

	assert.NoError(t, l.MarkDeleted("actor", time.Now().UTC()))
	assert.NotNil(t, l.DeletedAt)

	l2 := mustFile(t, advance, []domain.LiquidationItem{itemWith("100.00", "0")})
	l2.Status = domain.LiquidationApproved
	assert.ErrorIs(t, l2.MarkDeleted("actor", time.Now().UTC()), apperrors.ErrInvalidState)
}

func TestCheckInvariants(t *testing.T) {
	advance := approvedAdvance("1000.00")
	l := mustFile(t, advance, []domain.LiquidationItem{itemWith("100.00", "0")})

	l.Level2 = &domain.LevelReview{ReviewedBy: "x", ReviewedAt: time.Now().UTC()}
	assert.ErrorIs(t, l.CheckInvariants(), apperrors.ErrValidation, "level-2 without level-1 must fail")
	l.Level2 = nil

	l.ReturnToCompany = dec("10.00")
	l.Reimbursement = dec("10.00")
	assert.ErrorIs(t, l.CheckInvariants(), apperrors.ErrValidation, "both money sides nonzero must fail")
	l.RecomputeDerived()

	l.Attachments = []domain.Attachment{{
		AttachmentID:  uuid.NewString(),
		LiquidationID: l.LiquidationID,
		Kind:          domain.BindingItem,
		ItemID:        strPtr("no-such-item"),
	}}
	assert.ErrorIs(t, l.CheckInvariants(), apperrors.ErrInvalidBinding)
}
