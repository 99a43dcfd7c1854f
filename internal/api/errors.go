package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/playnetic/wallet-service/internal/repos/players"
	"github.com/playnetic/wallet-service/internal/services/wallet"
)

// Error codes are part of the API contract; the mapping below is fixed.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeIdempotencyConflict = "IDEMPOTENCY_CONFLICT"
	CodeInternal            = "INTERNAL_ERROR"
)

type errorResponse struct {
	Error string `json:"error"`
	// Message is a string, except for validation failures where it is a
	// list of per-field messages.
	Message any `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeValidationError(w http.ResponseWriter, fieldMsgs []string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: CodeValidation, Message: fieldMsgs})
}

// writeServiceError maps engine errors to their fixed status codes.
// Anything unclassified is a 500 with a generic message; details stay in
// the logs.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, players.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, CodePlayerNotFound, "player not found")
	case errors.Is(err, wallet.ErrInsufficientFunds):
		writeError(w, http.StatusPaymentRequired, CodeInsufficientFunds, "insufficient funds")
	case errors.Is(err, wallet.ErrIdempotencyConflict):
		writeError(w, http.StatusConflict, CodeIdempotencyConflict, "transaction id already used for a different operation")
	case errors.Is(err, wallet.ErrNonPositiveAmount):
		writeValidationError(w, []string{"amount: must be greater than zero"})
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
