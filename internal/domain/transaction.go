package domain

import "time"

// TimestampLayout formats TransactionRecord.Timestamp as yyyy-MM-dd HH:mm:ss.
const TimestampLayout = "2006-01-02 15:04:05"

// TransactionKind is the direction of a transfer.
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
)

// IsValid checks if the kind is known.
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindDeposit || k == TransactionKindWithdraw
}

// TransactionRecord is an immutable log entry for one successful transfer.
type TransactionRecord struct {
	ID           string          `json:"id"`
	Kind         TransactionKind `json:"kind"`
	Amount       int64           `json:"amount"`
	Timestamp    string          `json:"timestamp"`
	BalanceAfter int64           `json:"balance_after"`
}

// NewTransactionRecord stamps a record with the given wall clock time.
func NewTransactionRecord(id string, kind TransactionKind, amount, balanceAfter int64, at time.Time) TransactionRecord {
	return TransactionRecord{
		ID:           id,
		Kind:         kind,
		Amount:       amount,
		Timestamp:    at.Format(TimestampLayout),
		BalanceAfter: balanceAfter,
	}
}

// Time parses Timestamp back into local time.
func (r TransactionRecord) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, r.Timestamp, time.Local)
}
