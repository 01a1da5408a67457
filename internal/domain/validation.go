package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidDefaults    = errors.New("invalid account defaults")
)

// Validation constants
const (
	MaxAccountNameLength = 64
	MinAccountNameLength = 1

	// DefaultTransactionLimit is the per-transaction cap the ATM screen enforced.
	DefaultTransactionLimit int64 = 10_000_000
)

// DefaultQuickAmounts are the preset buttons offered next to the amount field.
var DefaultQuickAmounts = []int64{10000, 30000, 50000, 100000}

// ValidateAccountName validates the display name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len([]rune(name)) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateAmount checks amount against the positive rule and an optional cap.
// A limit of zero or less disables the cap.
func ValidateAmount(amount, limit int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if limit > 0 && amount > limit {
		return fmt.Errorf("%w: maximum is %d", ErrAmountExceedsLimit, limit)
	}

	return nil
}

// ValidateDefaults validates the account a reset restores.
func ValidateDefaults(a Account) error {
	if err := ValidateAccountName(a.Name); err != nil {
		return err
	}

	if !a.Valid() {
		return fmt.Errorf("%w: cash and balance must be non-negative and total at most %d", ErrInvalidDefaults, int64(math.MaxInt64))
	}

	return nil
}

// ParseAmount converts user-entered decimal input into whole currency units.
// Fractional values are rejected rather than rounded.
func ParseAmount(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: amount must be a whole number", ErrInvalidAmount)
	}

	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, fmt.Errorf("%w: amount is too large", ErrAmountExceedsLimit)
	}

	if d.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, ErrInvalidAmount
	}

	return d.IntPart(), nil
}
