package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the actor lacks the capability for the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates an optimistic-concurrency collision on write.
// This is the only error kind callers should retry automatically, and only once.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidState indicates the operation is not legal for the liquidation's
// current status, e.g. editing a liquidation that is no longer pending.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrIllegalTransition indicates a level/state pairing the approval state
// machine does not permit.
var ErrIllegalTransition = errors.New("illegal approval transition")

// ErrAlreadyDecided indicates a duplicate of an approval action that has
// already been applied; state is left unchanged.
var ErrAlreadyDecided = errors.New("approval already decided")

// ErrAlreadyLiquidated indicates the cash advance is already referenced by a liquidation.
var ErrAlreadyLiquidated = errors.New("cash advance already liquidated")

// ErrInvalidBinding indicates an attachment binding to an item that does not
// belong to the liquidation's current item set.
var ErrInvalidBinding = errors.New("invalid attachment binding")

// ErrDanglingAttachment indicates an item replacement would orphan an
// item-level attachment that the caller neither removed nor re-bound.
var ErrDanglingAttachment = errors.New("dangling item attachment")
