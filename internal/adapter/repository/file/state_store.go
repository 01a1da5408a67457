package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/iho/atmledger/internal/domain"
)

// snapshot is the on-disk layout: a single JSON document.
type snapshot struct {
	Account    domain.Account             `json:"account"`
	Opening    domain.Account             `json:"opening"`
	History    []domain.TransactionRecord `json:"history,omitempty"`
	ReplayFrom int                        `json:"replay_from,omitempty"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// StateStore persists the ledger state as one JSON file.
// Writes go to a temp file first and are renamed over the target.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a StateStore for path, creating parent directories.
func NewStateStore(path string) (*StateStore, error) {
	if path == "" {
		return nil, errors.New("state file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &StateStore{path: path}, nil
}

// Load reads the snapshot. A missing file is domain.ErrStateNotFound.
func (s *StateStore) Load(ctx context.Context) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode state file %s: %w", s.path, err)
	}

	return &domain.State{
		Account:    snap.Account,
		Opening:    snap.Opening,
		History:    snap.History,
		ReplayFrom: snap.ReplayFrom,
		UpdatedAt:  snap.UpdatedAt,
	}, nil
}

// Save writes the snapshot atomically.
func (s *StateStore) Save(ctx context.Context, state *domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(snapshot{
		Account:    state.Account,
		Opening:    state.Opening,
		History:    state.History,
		ReplayFrom: state.ReplayFrom,
		UpdatedAt:  state.UpdatedAt,
	})
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

// Ping checks that the state directory is still there.
func (s *StateStore) Ping(ctx context.Context) error {
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filepath.Dir(s.path))
	}

	return nil
}

func (s *StateStore) Close() error {
	return nil
}
