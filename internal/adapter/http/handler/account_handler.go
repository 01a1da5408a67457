package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/atmledger/internal/adapter/http/dto"
	"github.com/iho/atmledger/internal/domain"
)

// maxAmountBodyBytes bounds a deposit or withdraw request body.
const maxAmountBodyBytes = 4 << 10

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Deposit(ctx context.Context, amount int64) (*domain.TransactionRecord, error)
	Withdraw(ctx context.Context, amount int64) (*domain.TransactionRecord, error)
	GetAccount(ctx context.Context) domain.Account
	GetHistory(ctx context.Context) []domain.TransactionRecord
	Reset(ctx context.Context) (domain.Account, error)
	QuickAmounts() []int64
	TransactionLimit() int64
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	ledger AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledger AccountService) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

// Get returns the account with its total assets.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AccountFromDomain(h.ledger.GetAccount(r.Context())))
}

// History returns the transaction records oldest first.
// ?limit=N keeps only the N most recent.
func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	records := h.ledger.GetHistory(r.Context())

	if limit := parseIntQuery(r, "limit", 0); limit > 0 && limit < len(records) {
		records = records[len(records)-limit:]
	}

	writeJSON(w, http.StatusOK, dto.HistoryResponse{
		Records: dto.RecordsFromDomain(records),
		Count:   len(records),
	})
}

// Deposit moves cash into the balance.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.transfer(w, r, h.ledger.Deposit)
}

// Withdraw moves balance into cash.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.transfer(w, r, h.ledger.Withdraw)
}

func (h *AccountHandler) transfer(w http.ResponseWriter, r *http.Request, op func(context.Context, int64) (*domain.TransactionRecord, error)) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAmountBodyBytes)

	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.RejectionCode(domain.ErrInvalidAmount), rejectionMessage(domain.ErrInvalidAmount, domain.Account{}, 0))
		return
	}

	amount, err := req.ToAmount()
	if err != nil {
		writeError(w, mapDomainError(err), domain.RejectionCode(err), rejectionMessage(err, domain.Account{}, h.ledger.TransactionLimit()))
		return
	}

	record, err := op(r.Context(), amount)
	if err != nil {
		account := h.ledger.GetAccount(r.Context())
		writeError(w, mapDomainError(err), domain.RejectionCode(err), rejectionMessage(err, account, h.ledger.TransactionLimit()))
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionResponse{
		Record:  dto.RecordFromDomain(*record),
		Account: dto.AccountFromDomain(h.ledger.GetAccount(r.Context())),
		Message: successMessage(*record),
	})
}

// Reset restores the configured defaults.
func (h *AccountHandler) Reset(w http.ResponseWriter, r *http.Request) {
	account, err := h.ledger.Reset(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), domain.RejectionCode(err), rejectionMessage(err, domain.Account{}, 0))
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// QuickAmounts returns the preset amounts and the per-transaction limit.
func (h *AccountHandler) QuickAmounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.QuickAmountsFromValues(h.ledger.QuickAmounts(), h.ledger.TransactionLimit()))
}
