package domain

import "math"

// Account is the ATM account: funds held outside (Cash) and inside (Balance).
type Account struct {
	Name    string `json:"name"`
	Cash    int64  `json:"cash"`
	Balance int64  `json:"balance"`
}

// TotalAssets returns cash plus balance.
func (a Account) TotalAssets() int64 {
	return a.Cash + a.Balance
}

// ValidateDeposit checks that amount can move from cash into the balance.
func (a Account) ValidateDeposit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > a.Cash {
		return ErrInsufficientCash
	}
	return nil
}

// ValidateWithdraw checks that amount can move from the balance into cash.
func (a Account) ValidateWithdraw(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > a.Balance {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDeposit returns the account after a deposit of amount.
func (a Account) ApplyDeposit(amount int64) Account {
	a.Cash -= amount
	a.Balance += amount
	return a
}

// ApplyWithdraw returns the account after a withdrawal of amount.
func (a Account) ApplyWithdraw(amount int64) Account {
	a.Balance -= amount
	a.Cash += amount
	return a
}

// Valid reports whether both sides are non-negative and their total fits in
// an int64. Transfers conserve the total, so a valid account stays valid.
func (a Account) Valid() bool {
	return a.Cash >= 0 && a.Balance >= 0 && a.Cash <= math.MaxInt64-a.Balance
}
