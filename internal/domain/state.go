package domain

import "time"

// State is everything a store persists for the ledger.
type State struct {
	Account Account
	// Opening is the account as of the last initialization or reset.
	Opening Account
	History []TransactionRecord
	// ReplayFrom is the index of the first record written after Opening.
	// Records before it predate the last reset that kept history.
	ReplayFrom int
	UpdatedAt  time.Time
}

// NewState builds a fresh state from defaults with empty history.
func NewState(defaults Account, now time.Time) *State {
	return &State{
		Account:   defaults,
		Opening:   defaults,
		History:   []TransactionRecord{},
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so callers cannot alias the history slice.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	cp := *s
	cp.History = make([]TransactionRecord, len(s.History))
	copy(cp.History, s.History)

	return &cp
}
