package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/atmledger/internal/domain"
)

func TestStateStoreLoadEmpty(t *testing.T) {
	store, _ := newTestStateStore(t, "")

	_, err := store.Load(context.Background())
	if !errors.Is(err, domain.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestStateStoreSaveAndLoad(t *testing.T) {
	store, mr := newTestStateStore(t, "test:")
	ctx := context.Background()

	updated := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	state := &domain.State{
		Account: domain.Account{Name: "default-user", Cash: 70000, Balance: 80000},
		Opening: domain.Account{Name: "default-user", Cash: 100000, Balance: 50000},
		History: []domain.TransactionRecord{
			{ID: "r1", Kind: domain.TransactionKindDeposit, Amount: 30000, Timestamp: "2026-05-01 12:00:00", BalanceAfter: 80000},
		},
		ReplayFrom: 0,
		UpdatedAt:  updated,
	}

	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if got := mr.HGet("test:account", "cash"); got != "70000" {
		t.Fatalf("expected scalar cash field, got %q", got)
	}
	if got := mr.HGet("test:account", "balance"); got != "80000" {
		t.Fatalf("expected scalar balance field, got %q", got)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Account != state.Account || loaded.Opening != state.Opening {
		t.Fatalf("unexpected accounts: %+v / %+v", loaded.Account, loaded.Opening)
	}
	if len(loaded.History) != 1 || loaded.History[0] != state.History[0] {
		t.Fatalf("unexpected history: %+v", loaded.History)
	}
	if !loaded.UpdatedAt.Equal(updated) {
		t.Fatalf("expected updated_at %v, got %v", updated, loaded.UpdatedAt)
	}
}

func TestStateStoreSaveReplacesHistory(t *testing.T) {
	store, mr := newTestStateStore(t, "")
	ctx := context.Background()

	state := &domain.State{
		Account: domain.Account{Name: "a", Cash: 1, Balance: 1},
		History: []domain.TransactionRecord{
			{ID: "r1", Kind: domain.TransactionKindDeposit, Amount: 1, BalanceAfter: 1},
			{ID: "r2", Kind: domain.TransactionKindWithdraw, Amount: 1, BalanceAfter: 0},
		},
		ReplayFrom: 1,
	}
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	state.History = nil
	state.ReplayFrom = 0
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.History) != 0 {
		t.Fatalf("expected history to be cleared, got %d records", len(loaded.History))
	}
	if mr.Exists(DefaultKeyPrefix + "history") {
		t.Fatalf("expected history key to be removed")
	}
}

func TestStateStoreLoadCorruptRecord(t *testing.T) {
	store, mr := newTestStateStore(t, "")
	mr.HSet(DefaultKeyPrefix+"account", "name", "a", "cash", "1", "balance", "2")
	if _, err := mr.Push(DefaultKeyPrefix+"history", "{broken"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestStateStorePingFailsWhenServerDown(t *testing.T) {
	store, mr := newTestStateStore(t, "")
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("expected ping to succeed: %v", err)
	}

	mr.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail after server shutdown")
	}
}
