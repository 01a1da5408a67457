package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/atmledger/internal/adapter/http/dto"
	"github.com/iho/atmledger/internal/domain"
	"github.com/iho/atmledger/internal/usecase"
)

// ConsistencyChecker defines the behavior needed by LedgerHandler.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	checker ConsistencyChecker
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(checker ConsistencyChecker) *LedgerHandler {
	return &LedgerHandler{checker: checker}
}

// CheckConsistency replays the history and reports the result.
// An inconsistent ledger answers 409 with the full report.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.checker.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentLedger) && report != nil {
			writeJSON(w, http.StatusConflict, dto.ConsistencyFromReport(report))
			return
		}
		writeError(w, http.StatusInternalServerError, domain.RejectionCode(err), "failed to check consistency")
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
