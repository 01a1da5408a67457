package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/atmledger/internal/domain"
)

// LedgerConfig holds the ledger's collaborators and settings.
type LedgerConfig struct {
	Store   StateStore
	IDGen   IDGenerator
	Metrics MetricsRecorder
	Logger  zerolog.Logger
	Now     func() time.Time

	// Defaults are restored by Reset and used when the store is empty.
	Defaults domain.Account
	// TransactionLimit caps a single deposit or withdrawal. Zero disables it.
	TransactionLimit   int64
	PersistHistory     bool
	ResetClearsHistory bool
	QuickAmounts       []int64
}

// LedgerUseCase owns the account and its transaction history.
// All mutation goes through Deposit, Withdraw and Reset.
type LedgerUseCase struct {
	mu    sync.Mutex
	state *domain.State

	store   StateStore
	idGen   IDGenerator
	metrics MetricsRecorder
	logger  zerolog.Logger
	now     func() time.Time

	defaults           domain.Account
	limit              int64
	persistHistory     bool
	resetClearsHistory bool
	quickAmounts       []int64

	observers      []observerEntry
	nextObserverID int
}

type observerEntry struct {
	id int
	fn Observer
}

// NewLedgerUseCase creates the ledger and loads its state from the store.
// An empty store is initialized from cfg.Defaults and saved immediately.
func NewLedgerUseCase(ctx context.Context, cfg LedgerConfig) (*LedgerUseCase, error) {
	if cfg.Store == nil {
		return nil, errors.New("ledger: state store is required")
	}
	if cfg.IDGen == nil {
		return nil, errors.New("ledger: id generator is required")
	}
	if err := domain.ValidateDefaults(cfg.Defaults); err != nil {
		return nil, err
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Metrics == nil {
		cfg.Metrics = noopMetrics{}
	}
	if len(cfg.QuickAmounts) == 0 {
		cfg.QuickAmounts = domain.DefaultQuickAmounts
	}

	uc := &LedgerUseCase{
		store:              cfg.Store,
		idGen:              cfg.IDGen,
		metrics:            cfg.Metrics,
		logger:             cfg.Logger,
		now:                cfg.Now,
		defaults:           cfg.Defaults,
		limit:              cfg.TransactionLimit,
		persistHistory:     cfg.PersistHistory,
		resetClearsHistory: cfg.ResetClearsHistory,
		quickAmounts:       append([]int64(nil), cfg.QuickAmounts...),
	}

	if err := uc.load(ctx); err != nil {
		return nil, err
	}

	return uc, nil
}

func (uc *LedgerUseCase) load(ctx context.Context) error {
	state, err := uc.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrStateNotFound):
		state = domain.NewState(uc.defaults, uc.now())
		if err := uc.persist(ctx, state); err != nil {
			return err
		}
		uc.logger.Info().
			Str("name", state.Account.Name).
			Int64("cash", state.Account.Cash).
			Int64("balance", state.Account.Balance).
			Msg("no saved ledger state, initialized from defaults")
	case err != nil:
		return fmt.Errorf("failed to load ledger state: %w", err)
	default:
		if !state.Account.Valid() {
			return fmt.Errorf("%w: stored account has negative cash or balance, or total assets overflow", domain.ErrInconsistentLedger)
		}
		if state.History == nil {
			state.History = []domain.TransactionRecord{}
		}
		if !uc.persistHistory || (len(state.History) == 0 && state.Opening == (domain.Account{})) {
			// History is session-scoped, so the session starts from what was loaded.
			state.Opening = state.Account
			state.History = []domain.TransactionRecord{}
			state.ReplayFrom = 0
		}
		if state.ReplayFrom < 0 || state.ReplayFrom > len(state.History) {
			return fmt.Errorf("%w: replay offset %d outside history of %d records",
				domain.ErrInconsistentLedger, state.ReplayFrom, len(state.History))
		}
		uc.logger.Info().
			Str("name", state.Account.Name).
			Int64("cash", state.Account.Cash).
			Int64("balance", state.Account.Balance).
			Int("history", len(state.History)).
			Msg("loaded ledger state")
	}

	uc.state = state

	return nil
}

// Deposit moves amount from cash into the balance.
func (uc *LedgerUseCase) Deposit(ctx context.Context, amount int64) (*domain.TransactionRecord, error) {
	return uc.transfer(ctx, domain.TransactionKindDeposit, amount)
}

// Withdraw moves amount from the balance into cash.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, amount int64) (*domain.TransactionRecord, error) {
	return uc.transfer(ctx, domain.TransactionKindWithdraw, amount)
}

func (uc *LedgerUseCase) transfer(ctx context.Context, kind domain.TransactionKind, amount int64) (*domain.TransactionRecord, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account := uc.state.Account

	// 1. Validate
	err := domain.ValidateAmount(amount, uc.limit)
	if err == nil {
		if kind == domain.TransactionKindDeposit {
			err = account.ValidateDeposit(amount)
		} else {
			err = account.ValidateWithdraw(amount)
		}
	}
	if err != nil {
		uc.metrics.RecordRejection(kind, err)
		uc.logger.Warn().
			Str("kind", string(kind)).
			Int64("amount", amount).
			Int64("cash", account.Cash).
			Int64("balance", account.Balance).
			Err(err).
			Msg("transfer rejected")

		return nil, err
	}

	// 2. Mutate a copy
	if kind == domain.TransactionKindDeposit {
		account = account.ApplyDeposit(amount)
	} else {
		account = account.ApplyWithdraw(amount)
	}

	now := uc.now()
	record := domain.NewTransactionRecord(uc.idGen.Generate(), kind, amount, account.Balance, now)

	next := uc.state.Clone()
	next.Account = account
	next.History = append(next.History, record)
	next.UpdatedAt = now

	// 3. Persist, then commit in memory
	if err := uc.persist(ctx, next); err != nil {
		return nil, err
	}
	uc.state = next

	uc.metrics.RecordTransaction(record, account)
	uc.logger.Info().
		Str("id", record.ID).
		Str("kind", string(kind)).
		Int64("amount", amount).
		Int64("cash", account.Cash).
		Int64("balance", account.Balance).
		Msg("transfer completed")

	// 4. Notify
	uc.notify(domain.StateChange{
		EventType:   domain.EventTypeFor(kind),
		Account:     account,
		TotalAssets: account.TotalAssets(),
		Record:      &record,
		OccurredAt:  now,
	})

	return &record, nil
}

// GetAccount returns a snapshot of the account.
func (uc *LedgerUseCase) GetAccount(ctx context.Context) domain.Account {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.state.Account
}

// GetHistory returns the transaction records in insertion order.
func (uc *LedgerUseCase) GetHistory(ctx context.Context) []domain.TransactionRecord {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	history := make([]domain.TransactionRecord, len(uc.state.History))
	copy(history, uc.state.History)

	return history
}

// TotalAssets returns cash plus balance.
func (uc *LedgerUseCase) TotalAssets(ctx context.Context) int64 {
	return uc.GetAccount(ctx).TotalAssets()
}

// QuickAmounts returns the configured preset amounts.
func (uc *LedgerUseCase) QuickAmounts() []int64 {
	return append([]int64(nil), uc.quickAmounts...)
}

// TransactionLimit returns the per-transaction cap, zero when disabled.
func (uc *LedgerUseCase) TransactionLimit() int64 {
	return uc.limit
}

// Reset restores the configured defaults.
func (uc *LedgerUseCase) Reset(ctx context.Context) (domain.Account, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now()

	next := uc.state.Clone()
	next.Account = uc.defaults
	next.Opening = uc.defaults
	next.UpdatedAt = now
	next.ReplayFrom = len(next.History)
	if uc.resetClearsHistory {
		next.History = []domain.TransactionRecord{}
		next.ReplayFrom = 0
	}

	if err := uc.persist(ctx, next); err != nil {
		return domain.Account{}, err
	}
	uc.state = next

	uc.metrics.RecordReset(next.Account)
	uc.logger.Info().
		Str("name", next.Account.Name).
		Int64("cash", next.Account.Cash).
		Int64("balance", next.Account.Balance).
		Bool("history_cleared", uc.resetClearsHistory).
		Msg("ledger reset to defaults")

	uc.notify(domain.StateChange{
		EventType:   domain.EventTypeReset,
		Account:     next.Account,
		TotalAssets: next.Account.TotalAssets(),
		OccurredAt:  now,
	})

	return next.Account, nil
}

// Subscribe registers an observer and returns a func that removes it.
// Observers run synchronously while the ledger lock is held and must not
// call back into the ledger.
func (uc *LedgerUseCase) Subscribe(fn Observer) (unsubscribe func()) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.nextObserverID++
	id := uc.nextObserverID
	uc.observers = append(uc.observers, observerEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()

			for i, o := range uc.observers {
				if o.id == id {
					uc.observers = append(uc.observers[:i:i], uc.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Close flushes the current state and closes the store.
func (uc *LedgerUseCase) Close(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.persist(ctx, uc.state); err != nil {
		return err
	}

	uc.logger.Info().Msg("ledger state flushed")

	return uc.store.Close()
}

// Ping checks the underlying store.
func (uc *LedgerUseCase) Ping(ctx context.Context) error {
	return uc.store.Ping(ctx)
}

func (uc *LedgerUseCase) persist(ctx context.Context, state *domain.State) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultPersistTimeout)
	defer cancel()

	toSave := state
	if !uc.persistHistory {
		toSave = state.Clone()
		toSave.History = nil
		toSave.Opening = toSave.Account
		toSave.ReplayFrom = 0
	}

	if err := uc.store.Save(ctx, toSave); err != nil {
		uc.metrics.RecordPersistenceError()
		uc.logger.Error().Err(err).Msg("failed to persist ledger state")

		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	return nil
}

func (uc *LedgerUseCase) notify(change domain.StateChange) {
	for _, o := range uc.observers {
		o.fn(change)
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordTransaction(domain.TransactionRecord, domain.Account) {}
func (noopMetrics) RecordRejection(domain.TransactionKind, error)              {}
func (noopMetrics) RecordReset(domain.Account)                                 {}
func (noopMetrics) RecordPersistenceError()                                    {}
