package usecase

import (
	"context"
	"time"

	"github.com/iho/atmledger/internal/domain"
)

// StateStore persists and restores the ledger state.
type StateStore interface {
	// Load returns domain.ErrStateNotFound when nothing has been saved yet.
	Load(ctx context.Context) (*domain.State, error)
	Save(ctx context.Context, state *domain.State) error
	Ping(ctx context.Context) error
	Close() error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Observer is called synchronously after every successful state change.
// It must not call back into the ledger.
type Observer func(change domain.StateChange)

// MetricsRecorder receives ledger outcomes.
type MetricsRecorder interface {
	RecordTransaction(record domain.TransactionRecord, account domain.Account)
	RecordRejection(kind domain.TransactionKind, err error)
	RecordReset(account domain.Account)
	RecordPersistenceError()
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}
