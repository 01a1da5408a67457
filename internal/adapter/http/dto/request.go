package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/atmledger/internal/domain"
)

// AmountRequest is the body of deposit and withdraw requests.
// Amount accepts a JSON number or a numeric string.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToAmount converts the amount to whole currency units.
func (r *AmountRequest) ToAmount() (int64, error) {
	return domain.ParseAmount(r.Amount)
}
