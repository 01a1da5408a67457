package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/atmledger/internal/domain"
	"github.com/iho/atmledger/internal/usecase"
)

var _ usecase.MetricsRecorder = (*Metrics)(nil)

func TestRecordTransaction(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.RecordTransaction(
		domain.TransactionRecord{Kind: domain.TransactionKindDeposit, Amount: 30000},
		domain.Account{Cash: 70000, Balance: 80000},
	)

	if got := testutil.ToFloat64(m.Transactions.WithLabelValues("deposit")); got != 1 {
		t.Fatalf("expected 1 deposit, got %v", got)
	}
	if got := testutil.ToFloat64(m.Cash); got != 70000 {
		t.Fatalf("expected cash gauge 70000, got %v", got)
	}
	if got := testutil.ToFloat64(m.Balance); got != 80000 {
		t.Fatalf("expected balance gauge 80000, got %v", got)
	}
	if got := testutil.ToFloat64(m.TotalAssets); got != 150000 {
		t.Fatalf("expected total assets gauge 150000, got %v", got)
	}
	if got := testutil.CollectAndCount(m.TransactionAmount); got != 1 {
		t.Fatalf("expected one amount series, got %d", got)
	}
}

func TestRecordRejectionLabelsReason(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.RecordRejection(domain.TransactionKindWithdraw, domain.ErrInsufficientBalance)
	m.RecordRejection(domain.TransactionKindWithdraw, domain.ErrInsufficientBalance)
	m.RecordRejection(domain.TransactionKindDeposit, domain.ErrInvalidAmount)

	if got := testutil.ToFloat64(m.Rejections.WithLabelValues("withdraw", "insufficient_balance")); got != 2 {
		t.Fatalf("expected 2 balance rejections, got %v", got)
	}
	if got := testutil.ToFloat64(m.Rejections.WithLabelValues("deposit", "invalid_amount")); got != 1 {
		t.Fatalf("expected 1 invalid amount rejection, got %v", got)
	}
}

func TestRecordResetAndPersistenceError(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.RecordReset(domain.Account{Cash: 100000, Balance: 50000})
	m.RecordPersistenceError()

	if got := testutil.ToFloat64(m.Resets); got != 1 {
		t.Fatalf("expected 1 reset, got %v", got)
	}
	if got := testutil.ToFloat64(m.Cash); got != 100000 {
		t.Fatalf("expected cash gauge reset to 100000, got %v", got)
	}
	if got := testutil.ToFloat64(m.PersistenceErrors); got != 1 {
		t.Fatalf("expected 1 persistence error, got %v", got)
	}
}

func TestNewWithRegistryRegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	m.RecordRejection(domain.TransactionKindDeposit, domain.ErrInvalidAmount)
	m.RecordTransaction(domain.TransactionRecord{Kind: domain.TransactionKindDeposit, Amount: 1}, domain.Account{})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) != 8 {
		t.Fatalf("expected 8 metric families, got %d", len(families))
	}
}
