package domain

import "errors"

var (
	// Transfer rejections
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientCash    = errors.New("insufficient cash")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAmountExceedsLimit  = errors.New("amount exceeds transaction limit")

	// State errors
	ErrStateNotFound      = errors.New("ledger state not found")
	ErrPersistence        = errors.New("failed to persist ledger state")
	ErrInconsistentLedger = errors.New("ledger is inconsistent: history does not replay to current state")
)

// IsRejection reports whether err is a recoverable transfer rejection.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientCash) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrAmountExceedsLimit)
}

// RejectionCode returns a stable machine-readable code for err.
func RejectionCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInsufficientCash):
		return "insufficient_cash"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrAmountExceedsLimit):
		return "amount_exceeds_limit"
	case errors.Is(err, ErrPersistence):
		return "persistence_failed"
	case errors.Is(err, ErrInconsistentLedger):
		return "inconsistent_ledger"
	default:
		return "internal_error"
	}
}
