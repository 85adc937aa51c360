package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

func pendingLiquidation(t *testing.T) *domain.Liquidation {
	t.Helper()
	return mustFile(t, approvedAdvance("1000.00"), []domain.LiquidationItem{itemWith("800.00", "0")})
}

func TestDecide_FullApprovalPath(t *testing.T) {
	l := pendingLiquidation(t)
	now := time.Now().UTC()

	assert.NoError(t, l.Decide(domain.ApprovalLevel1, domain.ActionApprove, "lead", "ok", now))
	assert.Equal(t, domain.LiquidationLevel1Approved, l.Status)
	assert.NotNil(t, l.Level1)
	assert.Equal(t, "lead", l.Level1.ReviewedBy)
	assert.Nil(t, l.Level2)

	assert.NoError(t, l.Decide(domain.ApprovalLevel2, domain.ActionApprove, "manager", "", now))
	assert.Equal(t, domain.LiquidationApproved, l.Status)
	assert.NotNil(t, l.Level2)
	assert.True(t, l.Status.IsTerminal())
}

func TestDecide_Level2BeforeLevel1IsIllegal(t *testing.T) {
	l := pendingLiquidation(t)
	err := l.Decide(domain.ApprovalLevel2, domain.ActionApprove, "manager", "", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
	assert.Equal(t, domain.LiquidationPending, l.Status, "failed decision must not mutate")
	assert.Nil(t, l.Level2)
}

func TestDecide_RejectAtLevel1(t *testing.T) {
	l := pendingLiquidation(t)
	now := time.Now().UTC()

	assert.NoError(t, l.Decide(domain.ApprovalLevel1, domain.ActionReject, "lead", "missing receipts", now))
	assert.Equal(t, domain.LiquidationRejected, l.Status)
	assert.Equal(t, domain.ApprovalLevel1, l.RejectedAtLevel())
	assert.Equal(t, "missing receipts", l.Level1.Comment)
	assert.Nil(t, l.Level2, "a level-1 rejection fills only level 1")

	// Terminal: nothing moves a rejected liquidation.
	err := l.Decide(domain.ApprovalLevel1, domain.ActionApprove, "lead", "", now)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
	err = l.Decide(domain.ApprovalLevel2, domain.ActionApprove, "manager", "", now)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
}

func TestDecide_RejectAtLevel2(t *testing.T) {
	l := pendingLiquidation(t)
	now := time.Now().UTC()

	assert.NoError(t, l.Decide(domain.ApprovalLevel1, domain.ActionApprove, "lead", "", now))
	assert.NoError(t, l.Decide(domain.ApprovalLevel2, domain.ActionReject, "manager", "over budget", now))

	assert.Equal(t, domain.LiquidationRejected, l.Status)
	assert.Equal(t, domain.ApprovalLevel2, l.RejectedAtLevel())
	assert.NotNil(t, l.Level1, "the level-1 approval record survives a level-2 rejection")
}

func TestDecide_RepeatedDecisionIsAlreadyDecided(t *testing.T) {
	l := pendingLiquidation(t)
	now := time.Now().UTC()

	assert.NoError(t, l.Decide(domain.ApprovalLevel1, domain.ActionApprove, "lead", "", now))
	firstReview := *l.Level1

	// The identical double-submitted action is distinguishable from a
	// genuinely illegal transition and records nothing twice.
	err := l.Decide(domain.ApprovalLevel1, domain.ActionApprove, "lead", "", now.Add(time.Minute))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)
	assert.NotErrorIs(t, err, apperrors.ErrIllegalTransition)
	assert.Equal(t, firstReview, *l.Level1, "audit record must not be overwritten")
	assert.Equal(t, domain.LiquidationLevel1Approved, l.Status)

	// A different action at the same consumed level is illegal, not idempotent.
	err = l.Decide(domain.ApprovalLevel1, domain.ActionReject, "lead", "", now)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)

	assert.NoError(t, l.Decide(domain.ApprovalLevel2, domain.ActionApprove, "manager", "", now))
	err = l.Decide(domain.ApprovalLevel2, domain.ActionApprove, "manager", "", now)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)

	// After full approval, a level-1 re-approve still reads as already applied.
	err = l.Decide(domain.ApprovalLevel1, domain.ActionApprove, "lead", "", now)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)
}

func TestDecide_RepeatedRejectIsAlreadyDecided(t *testing.T) {
	l := pendingLiquidation(t)
	now := time.Now().UTC()

	assert.NoError(t, l.Decide(domain.ApprovalLevel1, domain.ActionReject, "lead", "", now))
	err := l.Decide(domain.ApprovalLevel1, domain.ActionReject, "lead", "", now)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)
}

func TestDecide_ValidatesInput(t *testing.T) {
	l := pendingLiquidation(t)
	now := time.Now().UTC()

	err := l.Decide(domain.ApprovalLevel(3), domain.ActionApprove, "x", "", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = l.Decide(domain.ApprovalLevel1, domain.DecisionAction("MAYBE"), "x", "", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDecide_IgnoresMoneyFields(t *testing.T) {
	// An unbalanced reconciliation does not gate approval.
	l := mustFile(t, approvedAdvance("5000.00"), []domain.LiquidationItem{itemWith("100.00", "0")})
	assert.True(t, l.ReturnToCompany.IsPositive())

	assert.NoError(t, l.Decide(domain.ApprovalLevel1, domain.ActionApprove, "lead", "", time.Now().UTC()))
	assert.NoError(t, l.Decide(domain.ApprovalLevel2, domain.ActionApprove, "manager", "", time.Now().UTC()))
	assert.Equal(t, domain.LiquidationApproved, l.Status)
}

func TestLiquidationStatus_Validity(t *testing.T) {
	assert.True(t, domain.LiquidationPending.IsValid())
	assert.False(t, domain.LiquidationStatus("DRAFT").IsValid())
	assert.False(t, domain.LiquidationPending.IsTerminal())
	assert.False(t, domain.LiquidationLevel1Approved.IsTerminal())
	assert.True(t, domain.LiquidationApproved.IsTerminal())
	assert.True(t, domain.LiquidationRejected.IsTerminal())
}
