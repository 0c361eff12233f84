package models

import "errors"

var (
	ErrConflictData        = errors.New("data conflicts with existing data")
	ErrDataNotFound        = errors.New("data not found")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrAccountNotApproved  = errors.New("account is not approved")
	ErrInvalidTransition   = errors.New("status transition is not allowed")
	ErrOrderTerminal       = errors.New("order is in a terminal state")
	ErrPaymentNotVerified  = errors.New("payment has not been verified")
	ErrProofNotApplicable  = errors.New("payment proof is not applicable for this payment method")
	ErrCancelReasonMissing = errors.New("cancel reason is required")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrInternalError       = errors.New("internal error")
)
