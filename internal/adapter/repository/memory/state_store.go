package memory

import (
	"context"
	"sync"

	"github.com/iho/atmledger/internal/domain"
)

// StateStore keeps the ledger state in process memory.
// Nothing survives a restart.
type StateStore struct {
	mu    sync.RWMutex
	state *domain.State
}

// NewStateStore creates an empty StateStore.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Load returns a copy of the saved state.
func (s *StateStore) Load(ctx context.Context) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil, domain.ErrStateNotFound
	}

	return s.state.Clone(), nil
}

// Save replaces the saved state with a copy of state.
func (s *StateStore) Save(ctx context.Context, state *domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()

	return nil
}

func (s *StateStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *StateStore) Close() error {
	return nil
}
