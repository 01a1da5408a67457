package dto

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/iho/atmledger/internal/domain"
	"github.com/iho/atmledger/internal/usecase"
)

// AccountResponse represents the account in API responses.
// The *_display fields group thousands, e.g. "100,000".
type AccountResponse struct {
	Name               string `json:"name"`
	Cash               int64  `json:"cash"`
	Balance            int64  `json:"balance"`
	TotalAssets        int64  `json:"total_assets"`
	CashDisplay        string `json:"cash_display"`
	BalanceDisplay     string `json:"balance_display"`
	TotalAssetsDisplay string `json:"total_assets_display"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a domain.Account) *AccountResponse {
	return &AccountResponse{
		Name:               a.Name,
		Cash:               a.Cash,
		Balance:            a.Balance,
		TotalAssets:        a.TotalAssets(),
		CashDisplay:        humanize.Comma(a.Cash),
		BalanceDisplay:     humanize.Comma(a.Balance),
		TotalAssetsDisplay: humanize.Comma(a.TotalAssets()),
	}
}

// TransactionRecordResponse represents one history record.
type TransactionRecordResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amount_display"`
	Timestamp     string `json:"timestamp"`
	BalanceAfter  int64  `json:"balance_after"`
}

// RecordFromDomain converts a domain record to response.
func RecordFromDomain(r domain.TransactionRecord) *TransactionRecordResponse {
	return &TransactionRecordResponse{
		ID:            r.ID,
		Kind:          string(r.Kind),
		Amount:        r.Amount,
		AmountDisplay: humanize.Comma(r.Amount),
		Timestamp:     r.Timestamp,
		BalanceAfter:  r.BalanceAfter,
	}
}

// RecordsFromDomain converts domain records to responses.
func RecordsFromDomain(records []domain.TransactionRecord) []*TransactionRecordResponse {
	result := make([]*TransactionRecordResponse, len(records))
	for i, r := range records {
		result[i] = RecordFromDomain(r)
	}
	return result
}

// TransactionResponse is returned by deposit and withdraw.
type TransactionResponse struct {
	Record  *TransactionRecordResponse `json:"record"`
	Account *AccountResponse           `json:"account"`
	Message string                     `json:"message"`
}

// HistoryResponse lists records oldest first.
type HistoryResponse struct {
	Records []*TransactionRecordResponse `json:"records"`
	Count   int                          `json:"count"`
}

// QuickAmountsResponse lists the preset amounts.
type QuickAmountsResponse struct {
	Amounts          []int64  `json:"amounts"`
	Displays         []string `json:"displays"`
	TransactionLimit int64    `json:"transaction_limit"`
}

// QuickAmountsFromValues builds the response for amounts and limit.
func QuickAmountsFromValues(amounts []int64, limit int64) *QuickAmountsResponse {
	displays := make([]string, len(amounts))
	for i, a := range amounts {
		displays[i] = humanize.Comma(a)
	}

	return &QuickAmountsResponse{
		Amounts:          amounts,
		Displays:         displays,
		TransactionLimit: limit,
	}
}

// ConsistencyResponse represents a consistency report.
type ConsistencyResponse struct {
	Consistent      bool             `json:"consistent"`
	RecordsReplayed int              `json:"records_replayed"`
	Account         *AccountResponse `json:"account"`
	Opening         *AccountResponse `json:"opening"`
	Replayed        *AccountResponse `json:"replayed"`
	Problems        []string         `json:"problems,omitempty"`
	CheckedAt       time.Time        `json:"checked_at"`
}

// ConsistencyFromReport converts a usecase report to response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		Consistent:      r.Consistent,
		RecordsReplayed: r.RecordsReplayed,
		Account:         AccountFromDomain(r.Account),
		Opening:         AccountFromDomain(r.Opening),
		Replayed:        AccountFromDomain(r.Replayed),
		Problems:        r.Problems,
		CheckedAt:       r.CheckedAt,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
