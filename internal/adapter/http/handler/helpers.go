package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/iho/atmledger/internal/adapter/http/dto"
	"github.com/iho/atmledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Message: message,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAmountExceedsLimit):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientCash):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInconsistentLedger):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// rejectionMessage is the user-facing text for a failed operation.
// account is the state the operation was rejected against.
func rejectionMessage(err error, account domain.Account, limit int64) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Please enter a whole amount greater than 0."
	case errors.Is(err, domain.ErrAmountExceedsLimit):
		if limit > 0 {
			return fmt.Sprintf("The amount exceeds the limit of %s per transaction.", humanize.Comma(limit))
		}
		return "The amount is too large."
	case errors.Is(err, domain.ErrInsufficientCash):
		return fmt.Sprintf("Not enough cash.\nCurrent cash: %s", humanize.Comma(account.Cash))
	case errors.Is(err, domain.ErrInsufficientBalance):
		return fmt.Sprintf("Not enough balance.\nCurrent balance: %s", humanize.Comma(account.Balance))
	case errors.Is(err, domain.ErrPersistence):
		return "The transaction could not be saved. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// successMessage is the user-facing text for a completed transfer.
func successMessage(record domain.TransactionRecord) string {
	if record.Kind == domain.TransactionKindWithdraw {
		return fmt.Sprintf("%s withdrawn.", humanize.Comma(record.Amount))
	}
	return fmt.Sprintf("%s deposited.", humanize.Comma(record.Amount))
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
