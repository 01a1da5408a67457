package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/iho/atmledger/internal/domain"
)

// MockStateStore is an in-memory implementation of StateStore.
type MockStateStore struct {
	mu    sync.RWMutex
	state *domain.State

	SaveCalls int
	Closed    bool

	LoadFunc func(ctx context.Context) (*domain.State, error)
	SaveFunc func(ctx context.Context, state *domain.State) error
	PingFunc func(ctx context.Context) error
}

func NewMockStateStore() *MockStateStore {
	return &MockStateStore{}
}

// NewMockStateStoreWith returns a store that already holds state.
func NewMockStateStoreWith(state *domain.State) *MockStateStore {
	return &MockStateStore{state: state.Clone()}
}

func (m *MockStateStore) Load(ctx context.Context) (*domain.State, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == nil {
		return nil, domain.ErrStateNotFound
	}
	return m.state.Clone(), nil
}

func (m *MockStateStore) Save(ctx context.Context, state *domain.State) error {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, state)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.Clone()
	return nil
}

func (m *MockStateStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockStateStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Saved returns a copy of the last saved state, nil if nothing was saved.
func (m *MockStateStore) Saved() *domain.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockMetricsRecorder counts what the ledger reports.
type MockMetricsRecorder struct {
	mu sync.Mutex

	Transactions      []domain.TransactionRecord
	Rejections        map[domain.TransactionKind][]error
	Resets            int
	PersistenceErrors int
}

func NewMockMetricsRecorder() *MockMetricsRecorder {
	return &MockMetricsRecorder{
		Rejections: make(map[domain.TransactionKind][]error),
	}
}

func (m *MockMetricsRecorder) RecordTransaction(record domain.TransactionRecord, account domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, record)
}

func (m *MockMetricsRecorder) RecordRejection(kind domain.TransactionKind, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejections[kind] = append(m.Rejections[kind], err)
}

func (m *MockMetricsRecorder) RecordReset(account domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resets++
}

func (m *MockMetricsRecorder) RecordPersistenceError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceErrors++
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
