package domain

import (
	"fmt"
	"time"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
)

// LiquidationStatus is the approval state of a liquidation.
// Transitions: PENDING -> LEVEL1_APPROVED -> APPROVED, with REJECTED
// absorbing from either reviewable state. Decide is the only code path that
// mutates it.
type LiquidationStatus string

const (
	LiquidationPending        LiquidationStatus = "PENDING"
	LiquidationLevel1Approved LiquidationStatus = "LEVEL1_APPROVED"
	LiquidationApproved       LiquidationStatus = "APPROVED"
	LiquidationRejected       LiquidationStatus = "REJECTED"
)

var validStatuses = map[LiquidationStatus]bool{
	LiquidationPending:        true,
	LiquidationLevel1Approved: true,
	LiquidationApproved:       true,
	LiquidationRejected:       true,
}

var terminalStatuses = map[LiquidationStatus]bool{
	LiquidationApproved: true,
	LiquidationRejected: true,
}

// IsValid returns true if the status is a known liquidation status.
func (s LiquidationStatus) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal returns true if no further transitions are allowed from the status.
func (s LiquidationStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// ApprovalLevel tags a decision with its stage in the two-level gate.
type ApprovalLevel int

const (
	ApprovalLevel1 ApprovalLevel = 1
	ApprovalLevel2 ApprovalLevel = 2
)

// DecisionAction is what a reviewer did at their level.
type DecisionAction string

const (
	ActionApprove DecisionAction = "APPROVE"
	ActionReject  DecisionAction = "REJECT"
)

// LevelReview is the audit record of one level's decision. A level's record
// is nil until that level acts; a rejection fills only the rejecting level.
type LevelReview struct {
	ReviewedBy string    `json:"reviewedBy"`
	ReviewedAt time.Time `json:"reviewedAt"`
	Comment    string    `json:"comment"`
}

// RejectedAtLevel returns which level recorded the rejection, or 0 if the
// liquidation is not rejected. A level-2 rejection implies a level-1 approval
// record exists alongside it.
func (l *Liquidation) RejectedAtLevel() ApprovalLevel {
	if l.Status != LiquidationRejected {
		return 0
	}
	if l.Level2 != nil {
		return ApprovalLevel2
	}
	return ApprovalLevel1
}

// alreadyApplied reports whether the requested decision is exactly the one
// the liquidation already reflects, i.e. the state has moved past the
// requested transition via that same action.
func (l *Liquidation) alreadyApplied(level ApprovalLevel, action DecisionAction) bool {
	switch {
	case level == ApprovalLevel1 && action == ActionApprove:
		return l.Level1 != nil && l.RejectedAtLevel() != ApprovalLevel1
	case level == ApprovalLevel1 && action == ActionReject:
		return l.RejectedAtLevel() == ApprovalLevel1
	case level == ApprovalLevel2 && action == ActionApprove:
		return l.Status == LiquidationApproved
	case level == ApprovalLevel2 && action == ActionReject:
		return l.RejectedAtLevel() == ApprovalLevel2
	}
	return false
}

// Decide applies an approve/reject action at the given level and records the
// level's audit fields. Level 1 is legal only while PENDING, level 2 only
// while LEVEL1_APPROVED; anything else fails with ErrIllegalTransition, or
// with ErrAlreadyDecided when the identical action was already applied, so a
// double-submitted request cannot double-record audit rows.
//
// The state machine never inspects money fields; an unbalanced reconciliation
// does not gate approval.
func (l *Liquidation) Decide(level ApprovalLevel, action DecisionAction, actorID, comment string, now time.Time) error {
	if action != ActionApprove && action != ActionReject {
		return fmt.Errorf("%w: unknown decision action %q", apperrors.ErrValidation, action)
	}

	var required LiquidationStatus
	switch level {
	case ApprovalLevel1:
		required = LiquidationPending
	case ApprovalLevel2:
		required = LiquidationLevel1Approved
	default:
		return fmt.Errorf("%w: unknown approval level %d", apperrors.ErrValidation, level)
	}

	if l.Status != required {
		if l.alreadyApplied(level, action) {
			return fmt.Errorf("%w: level %d %s already recorded", apperrors.ErrAlreadyDecided, level, action)
		}
		return fmt.Errorf("%w: level %d %s not allowed while status is %s", apperrors.ErrIllegalTransition, level, action, l.Status)
	}

	review := &LevelReview{ReviewedBy: actorID, ReviewedAt: now, Comment: comment}
	switch {
	case action == ActionApprove && level == ApprovalLevel1:
		l.Status = LiquidationLevel1Approved
		l.Level1 = review
	case action == ActionApprove && level == ApprovalLevel2:
		// Terminal acceptance: from here the liquidation is immutable to edits.
		l.Status = LiquidationApproved
		l.Level2 = review
	case level == ApprovalLevel1:
		l.Status = LiquidationRejected
		l.Level1 = review
	default:
		l.Status = LiquidationRejected
		l.Level2 = review
	}

	l.LastUpdatedAt = now
	l.LastUpdatedBy = actorID
	return nil
}
