package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/playnetic/wallet-service/internal/repos/transactions"
	"github.com/playnetic/wallet-service/internal/services/wallet"
	"github.com/shopspring/decimal"
)

// WalletService is the slice of the engine the handlers need; see
// wallet.Service for the real implementation.
type WalletService interface {
	Process(ctx context.Context, req wallet.Request, kind wallet.Kind) (wallet.Result, error)
	Balance(ctx context.Context, playerID uuid.UUID) (decimal.Decimal, error)
	History(ctx context.Context, playerID uuid.UUID) ([]transactions.WalletTransaction, error)
}

// HandlerProvider maps HTTP requests onto the wallet service and engine
// errors onto status codes. No business interpretation happens here.
type HandlerProvider struct {
	svc WalletService
}

func NewHandler(svc WalletService) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Request parsing ---

type operationRequest struct {
	TransactionID string `json:"transactionId"`
	PlayerID      string `json:"playerId"`
	Amount        string `json:"amount"`
}

type operationResponse struct {
	TransactionID string `json:"transactionId"`
	PlayerID      string `json:"playerId"`
	Balance       string `json:"balance"`
}

// parseOperation validates the wire shape and collects every field
// problem in one pass so the client gets the full list at once.
func parseOperation(raw operationRequest) (wallet.Request, []string) {
	var fieldMsgs []string

	req := wallet.Request{}

	txID, err := uuid.Parse(raw.TransactionID)
	if err != nil {
		fieldMsgs = append(fieldMsgs, "transactionId: must be a valid uuid")
	} else {
		req.TransactionID = txID
	}

	playerID, err := uuid.Parse(raw.PlayerID)
	if err != nil {
		fieldMsgs = append(fieldMsgs, "playerId: must be a valid uuid")
	} else {
		req.PlayerID = playerID
	}

	amount, msg := parseAmount(raw.Amount)
	if msg != "" {
		fieldMsgs = append(fieldMsgs, "amount: "+msg)
	} else {
		req.Amount = amount
	}

	return req, fieldMsgs
}

// parseAmount accepts a positive decimal string with at most 2
// fractional digits; amounts never travel as binary floats.
func parseAmount(s string) (decimal.Decimal, string) {
	if s == "" {
		return decimal.Decimal{}, "required"
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, "must be a decimal string"
	}

	if !amount.IsPositive() {
		return decimal.Decimal{}, "must be greater than zero"
	}

	if amount.Exponent() < -2 {
		return decimal.Decimal{}, "supports up to 2 decimal places"
	}

	return amount, ""
}

func parsePlayerIDFromPath(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "playerId")
	if idStr == "" {
		return uuid.UUID{}, fmt.Errorf("missing playerId")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid playerId: %w", err)
	}

	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// --- Handlers ---

// DebitHandler handles POST /api/v1/wallet/debit.
func (h *HandlerProvider) DebitHandler(w http.ResponseWriter, r *http.Request) {
	h.processOperation(w, r, wallet.KindDebit)
}

// CreditHandler handles POST /api/v1/wallet/credit.
func (h *HandlerProvider) CreditHandler(w http.ResponseWriter, r *http.Request) {
	h.processOperation(w, r, wallet.KindCredit)
}

func (h *HandlerProvider) processOperation(w http.ResponseWriter, r *http.Request, kind wallet.Kind) {
	var raw operationRequest

	err := decodeBody(w, r, &raw)
	if err != nil {
		writeValidationError(w, []string{"body: " + err.Error()})
		return
	}

	req, fieldMsgs := parseOperation(raw)
	if len(fieldMsgs) > 0 {
		writeValidationError(w, fieldMsgs)
		return
	}

	result, err := h.svc.Process(r.Context(), req, kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, operationResponse{
		TransactionID: result.TransactionID.String(),
		PlayerID:      result.PlayerID.String(),
		Balance:       result.Balance.StringFixed(2),
	})
}

// BalanceHandler handles GET /api/v1/wallet/players/{playerId}/balance.
func (h *HandlerProvider) BalanceHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDFromPath(r)
	if err != nil {
		writeValidationError(w, []string{"playerId: must be a valid uuid"})
		return
	}

	balance, err := h.svc.Balance(r.Context(), playerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"playerId": playerID.String(),
		"balance":  balance.StringFixed(2),
	})
}

type historyItem struct {
	TransactionID string    `json:"transactionId"`
	PlayerID      string    `json:"playerId"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	BalanceAfter  string    `json:"balanceAfter"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HistoryHandler handles GET /api/v1/wallet/players/{playerId}/transactions.
// Newest first, no pagination.
func (h *HandlerProvider) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDFromPath(r)
	if err != nil {
		writeValidationError(w, []string{"playerId: must be a valid uuid"})
		return
	}

	list, err := h.svc.History(r.Context(), playerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]historyItem, 0, len(list))
	for _, wt := range list {
		items = append(items, historyItem{
			TransactionID: wt.TransactionID.String(),
			PlayerID:      wt.PlayerID.String(),
			Type:          string(wt.Type),
			Amount:        wt.Amount.StringFixed(2),
			BalanceAfter:  wt.BalanceAfter.StringFixed(2),
			CreatedAt:     wt.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"playerId":     playerID.String(),
		"transactions": items,
	})
}
