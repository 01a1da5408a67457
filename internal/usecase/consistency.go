package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/atmledger/internal/domain"
)

// ConsistencyReport is the result of replaying the history against the account.
type ConsistencyReport struct {
	Consistent      bool
	Account         domain.Account
	Opening         domain.Account
	Replayed        domain.Account
	RecordsReplayed int
	Problems        []string
	CheckedAt       time.Time
}

// CheckConsistency replays every record written since the last reset on top
// of the opening account and compares the result with the live account.
// The report is returned even when the ledger is inconsistent.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	uc.mu.Lock()
	state := uc.state.Clone()
	uc.mu.Unlock()

	report := &ConsistencyReport{
		Account:   state.Account,
		Opening:   state.Opening,
		CheckedAt: uc.now(),
	}

	replayed := state.Opening
	var prev time.Time
	for i, rec := range state.History[state.ReplayFrom:] {
		idx := state.ReplayFrom + i

		// Records are appended oldest first.
		at, err := rec.Time()
		switch {
		case err != nil:
			report.Problems = append(report.Problems, fmt.Sprintf("record %d (%s) has unreadable timestamp %q", idx, rec.ID, rec.Timestamp))
		case at.Before(prev):
			report.Problems = append(report.Problems, fmt.Sprintf("record %d (%s) at %s is older than the record before it", idx, rec.ID, rec.Timestamp))
		default:
			prev = at
		}

		if rec.Amount <= 0 {
			report.Problems = append(report.Problems, fmt.Sprintf("record %d (%s) has non-positive amount %d", idx, rec.ID, rec.Amount))
		}

		switch rec.Kind {
		case domain.TransactionKindDeposit:
			replayed = replayed.ApplyDeposit(rec.Amount)
		case domain.TransactionKindWithdraw:
			replayed = replayed.ApplyWithdraw(rec.Amount)
		default:
			report.Problems = append(report.Problems, fmt.Sprintf("record %d (%s) has unknown kind %q", idx, rec.ID, rec.Kind))
			continue
		}

		if !replayed.Valid() {
			report.Problems = append(report.Problems, fmt.Sprintf("record %d (%s) drives cash or balance negative", idx, rec.ID))
		}
		if rec.BalanceAfter != replayed.Balance {
			report.Problems = append(report.Problems, fmt.Sprintf("record %d (%s) balance_after=%d, replayed balance=%d", idx, rec.ID, rec.BalanceAfter, replayed.Balance))
		}

		report.RecordsReplayed++
	}

	report.Replayed = replayed

	if replayed.Cash != state.Account.Cash || replayed.Balance != state.Account.Balance {
		report.Problems = append(report.Problems, fmt.Sprintf("replayed cash=%d balance=%d, account cash=%d balance=%d",
			replayed.Cash, replayed.Balance, state.Account.Cash, state.Account.Balance))
	}

	if state.Opening.TotalAssets() != state.Account.TotalAssets() {
		report.Problems = append(report.Problems, fmt.Sprintf("total assets changed from %d to %d without a reset",
			state.Opening.TotalAssets(), state.Account.TotalAssets()))
	}

	report.Consistent = len(report.Problems) == 0
	if !report.Consistent {
		return report, domain.ErrInconsistentLedger
	}

	return report, nil
}
