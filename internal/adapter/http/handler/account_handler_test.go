package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/atmledger/internal/adapter/http/dto"
	"github.com/iho/atmledger/internal/domain"
)

type accountServiceStub struct {
	account    domain.Account
	history    []domain.TransactionRecord
	limit      int64
	quick      []int64
	amounts    []int64
	depositFn  func(ctx context.Context, amount int64) (*domain.TransactionRecord, error)
	withdrawFn func(ctx context.Context, amount int64) (*domain.TransactionRecord, error)
	resetFn    func(ctx context.Context) (domain.Account, error)
}

func (s *accountServiceStub) Deposit(ctx context.Context, amount int64) (*domain.TransactionRecord, error) {
	s.amounts = append(s.amounts, amount)
	return s.depositFn(ctx, amount)
}

func (s *accountServiceStub) Withdraw(ctx context.Context, amount int64) (*domain.TransactionRecord, error) {
	s.amounts = append(s.amounts, amount)
	return s.withdrawFn(ctx, amount)
}

func (s *accountServiceStub) GetAccount(ctx context.Context) domain.Account {
	return s.account
}

func (s *accountServiceStub) GetHistory(ctx context.Context) []domain.TransactionRecord {
	return s.history
}

func (s *accountServiceStub) Reset(ctx context.Context) (domain.Account, error) {
	return s.resetFn(ctx)
}

func (s *accountServiceStub) QuickAmounts() []int64 {
	return s.quick
}

func (s *accountServiceStub) TransactionLimit() int64 {
	return s.limit
}

func newStub() *accountServiceStub {
	return &accountServiceStub{
		account: domain.Account{Name: "default-user", Cash: 100000, Balance: 50000},
		limit:   domain.DefaultTransactionLimit,
		quick:   domain.DefaultQuickAmounts,
	}
}

func TestAccountHandler_Get(t *testing.T) {
	handler := NewAccountHandler(newStub())

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Cash != 100000 || resp.TotalAssets != 150000 || resp.CashDisplay != "100,000" {
		t.Fatalf("unexpected account response %+v", resp)
	}
}

func TestAccountHandler_Deposit_Success(t *testing.T) {
	stub := newStub()
	stub.depositFn = func(ctx context.Context, amount int64) (*domain.TransactionRecord, error) {
		stub.account = stub.account.ApplyDeposit(amount)
		return &domain.TransactionRecord{ID: "r1", Kind: domain.TransactionKindDeposit, Amount: amount, BalanceAfter: stub.account.Balance}, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/account/deposit", bytes.NewBufferString(`{"amount": 30000}`))
	rec := httptest.NewRecorder()
	handler.Deposit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.amounts) != 1 || stub.amounts[0] != 30000 {
		t.Fatalf("expected ledger to receive 30000, got %v", stub.amounts)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Account.Cash != 70000 || resp.Account.Balance != 80000 {
		t.Fatalf("unexpected account %+v", resp.Account)
	}
	if resp.Record.BalanceAfter != 80000 || resp.Message != "30,000 deposited." {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Withdraw_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusConflict, "insufficient_balance", "Not enough balance.\nCurrent balance: 50,000"},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount", "Please enter a whole amount greater than 0."},
		{"limit", fmt.Errorf("%w: too big", domain.ErrAmountExceedsLimit), http.StatusBadRequest, "amount_exceeds_limit", "The amount exceeds the limit of 10,000,000 per transaction."},
		{"persistence", fmt.Errorf("%w: %w", domain.ErrPersistence, errors.New("disk")), http.StatusServiceUnavailable, "persistence_failed", "The transaction could not be saved. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			stub.withdrawFn = func(ctx context.Context, amount int64) (*domain.TransactionRecord, error) {
				return nil, tt.err
			}
			handler := NewAccountHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/account/withdraw", bytes.NewBufferString(`{"amount": 200000}`))
			rec := httptest.NewRecorder()
			handler.Withdraw(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Code != tt.wantCode || resp.Message != tt.wantMsg {
				t.Fatalf("unexpected error response %+v", resp)
			}
		})
	}
}

func TestAccountHandler_Deposit_BadInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"not json", `amount=5`, "invalid_amount"},
		{"non numeric", `{"amount": "five"}`, "invalid_amount"},
		{"fractional", `{"amount": 10.5}`, "invalid_amount"},
		{"overflow", `{"amount": 99999999999999999999}`, "amount_exceeds_limit"},
		{"oversized body", `{"amount": 5, "memo": "` + strings.Repeat("x", maxAmountBodyBytes) + `"}`, "invalid_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			stub.depositFn = func(ctx context.Context, amount int64) (*domain.TransactionRecord, error) {
				t.Fatalf("ledger must not be called for unparsable input")
				return nil, nil
			}
			handler := NewAccountHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/account/deposit", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.Deposit(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestAccountHandler_History(t *testing.T) {
	stub := newStub()
	stub.history = []domain.TransactionRecord{
		{ID: "r1", Kind: domain.TransactionKindDeposit, Amount: 1},
		{ID: "r2", Kind: domain.TransactionKindWithdraw, Amount: 2},
		{ID: "r3", Kind: domain.TransactionKindDeposit, Amount: 3},
	}
	handler := NewAccountHandler(stub)

	rec := httptest.NewRecorder()
	handler.History(rec, httptest.NewRequest(http.MethodGet, "/account/history", nil))

	var all dto.HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if all.Count != 3 || all.Records[0].ID != "r1" {
		t.Fatalf("unexpected history %+v", all)
	}

	rec = httptest.NewRecorder()
	handler.History(rec, httptest.NewRequest(http.MethodGet, "/account/history?limit=2", nil))

	var recent dto.HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &recent); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if recent.Count != 2 || recent.Records[0].ID != "r2" || recent.Records[1].ID != "r3" {
		t.Fatalf("expected the two most recent records, got %+v", recent.Records)
	}
}

func TestAccountHandler_Reset(t *testing.T) {
	stub := newStub()
	stub.resetFn = func(ctx context.Context) (domain.Account, error) {
		return domain.Account{Name: "default-user", Cash: 100000, Balance: 50000}, nil
	}
	handler := NewAccountHandler(stub)

	rec := httptest.NewRecorder()
	handler.Reset(rec, httptest.NewRequest(http.MethodPost, "/account/reset", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	stub.resetFn = func(ctx context.Context) (domain.Account, error) {
		return domain.Account{}, fmt.Errorf("%w: down", domain.ErrPersistence)
	}
	rec = httptest.NewRecorder()
	handler.Reset(rec, httptest.NewRequest(http.MethodPost, "/account/reset", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestAccountHandler_QuickAmounts(t *testing.T) {
	handler := NewAccountHandler(newStub())

	rec := httptest.NewRecorder()
	handler.QuickAmounts(rec, httptest.NewRequest(http.MethodGet, "/account/quick-amounts", nil))

	var resp dto.QuickAmountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Amounts) != 4 || resp.Displays[1] != "30,000" || resp.TransactionLimit != 10000000 {
		t.Fatalf("unexpected quick amounts %+v", resp)
	}
}
