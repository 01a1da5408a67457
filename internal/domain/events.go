package domain

import "time"

// Event types
const (
	EventTypeDeposited = "account.deposited"
	EventTypeWithdrew  = "account.withdrew"
	EventTypeReset     = "account.reset"
)

// StateChange is broadcast to observers after every successful mutation.
type StateChange struct {
	EventType   string             `json:"event_type"`
	Account     Account            `json:"account"`
	TotalAssets int64              `json:"total_assets"`
	Record      *TransactionRecord `json:"record,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// EventTypeFor maps a transaction kind to its event type.
func EventTypeFor(kind TransactionKind) string {
	if kind == TransactionKindWithdraw {
		return EventTypeWithdrew
	}
	return EventTypeDeposited
}
