package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/atmledger/internal/domain"
)

func TestStateStoreLoadEmpty(t *testing.T) {
	store := NewStateStore()

	_, err := store.Load(context.Background())
	if !errors.Is(err, domain.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestStateStoreSaveLoadIsolated(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()

	state := domain.NewState(domain.Account{Name: "bob", Cash: 10, Balance: 20}, time.Now())
	state.History = append(state.History, domain.TransactionRecord{ID: "r1", Kind: domain.TransactionKindDeposit, Amount: 5, BalanceAfter: 25})

	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	state.History[0].Amount = 999

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.History[0].Amount != 5 {
		t.Fatalf("store aliased caller history: %+v", loaded.History[0])
	}

	loaded.Account.Cash = 0
	again, _ := store.Load(ctx)
	if again.Account.Cash != 10 {
		t.Fatalf("store aliased returned state")
	}
}

func TestStateStoreSaveCanceled(t *testing.T) {
	store := NewStateStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Save(ctx, &domain.State{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := store.Ping(ctx); err == nil {
		t.Fatalf("expected ping to fail on canceled context")
	}
}
