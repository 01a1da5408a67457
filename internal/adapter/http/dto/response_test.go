package dto

import (
	"testing"
	"time"

	"github.com/iho/atmledger/internal/domain"
	"github.com/iho/atmledger/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	got := AccountFromDomain(domain.Account{Name: "default-user", Cash: 100000, Balance: 50000})

	if got.TotalAssets != 150000 {
		t.Fatalf("expected total assets 150000, got %d", got.TotalAssets)
	}
	if got.CashDisplay != "100,000" || got.BalanceDisplay != "50,000" || got.TotalAssetsDisplay != "150,000" {
		t.Fatalf("unexpected display strings %+v", got)
	}
}

func TestRecordsFromDomain(t *testing.T) {
	records := []domain.TransactionRecord{
		{ID: "r1", Kind: domain.TransactionKindDeposit, Amount: 1234567, Timestamp: "2026-01-01 10:00:00", BalanceAfter: 1284567},
		{ID: "r2", Kind: domain.TransactionKindWithdraw, Amount: 500, Timestamp: "2026-01-01 10:01:00", BalanceAfter: 1284067},
	}

	got := RecordsFromDomain(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Kind != "deposit" || got[0].AmountDisplay != "1,234,567" {
		t.Fatalf("unexpected first record %+v", got[0])
	}
	if got[1].ID != "r2" || got[1].Timestamp != "2026-01-01 10:01:00" {
		t.Fatalf("unexpected second record %+v", got[1])
	}
}

func TestQuickAmountsFromValues(t *testing.T) {
	got := QuickAmountsFromValues([]int64{10000, 100000}, 10000000)

	if len(got.Displays) != 2 || got.Displays[0] != "10,000" || got.Displays[1] != "100,000" {
		t.Fatalf("unexpected displays %v", got.Displays)
	}
	if got.TransactionLimit != 10000000 {
		t.Fatalf("unexpected limit %d", got.TransactionLimit)
	}
}

func TestConsistencyFromReport(t *testing.T) {
	now := time.Now()
	got := ConsistencyFromReport(&usecase.ConsistencyReport{
		Consistent:      false,
		Account:         domain.Account{Cash: 1, Balance: 2},
		Opening:         domain.Account{Cash: 3, Balance: 0},
		Replayed:        domain.Account{Cash: 3, Balance: 0},
		RecordsReplayed: 0,
		Problems:        []string{"drift"},
		CheckedAt:       now,
	})

	if got.Consistent || len(got.Problems) != 1 {
		t.Fatalf("unexpected response %+v", got)
	}
	if got.Account.TotalAssets != 3 || got.Opening.Cash != 3 {
		t.Fatalf("unexpected accounts %+v / %+v", got.Account, got.Opening)
	}
	if !got.CheckedAt.Equal(now) {
		t.Fatalf("unexpected checked_at %v", got.CheckedAt)
	}
}
