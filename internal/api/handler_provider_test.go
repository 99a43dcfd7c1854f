package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playnetic/wallet-service/internal/api"
	"github.com/playnetic/wallet-service/internal/repos/players"
	"github.com/playnetic/wallet-service/internal/repos/transactions"
	"github.com/playnetic/wallet-service/internal/services/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	processErr error
	result     wallet.Result

	balanceErr error
	balance    decimal.Decimal

	historyErr error
	history    []transactions.WalletTransaction

	gotReq  wallet.Request
	gotKind wallet.Kind
}

func (s *stubService) Process(_ context.Context, req wallet.Request, kind wallet.Kind) (wallet.Result, error) {
	s.gotReq = req
	s.gotKind = kind

	if s.processErr != nil {
		return wallet.Result{}, s.processErr
	}

	return s.result, nil
}

func (s *stubService) Balance(context.Context, uuid.UUID) (decimal.Decimal, error) {
	return s.balance, s.balanceErr
}

func (s *stubService) History(context.Context, uuid.UUID) ([]transactions.WalletTransaction, error) {
	return s.history, s.historyErr
}

func doRequest(t *testing.T, svc api.WalletService, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := api.NewRouter(svc)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func validOperationBody(t *testing.T) (string, uuid.UUID, uuid.UUID) {
	t.Helper()

	txID := uuid.New()
	playerID := uuid.New()
	body := `{"transactionId":"` + txID.String() + `","playerId":"` + playerID.String() + `","amount":"10.00"}`

	return body, txID, playerID
}

func TestProcessHandlers_Success(t *testing.T) {
	body, txID, playerID := validOperationBody(t)

	for _, tt := range []struct {
		path string
		kind wallet.Kind
	}{
		{path: "/api/v1/wallet/debit", kind: wallet.KindDebit},
		{path: "/api/v1/wallet/credit", kind: wallet.KindCredit},
	} {
		t.Run(string(tt.kind), func(t *testing.T) {
			svc := &stubService{result: wallet.Result{
				TransactionID: txID,
				PlayerID:      playerID,
				Balance:       decimal.RequireFromString("90.00"),
			}}

			rec := doRequest(t, svc, http.MethodPost, tt.path, body)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.kind, svc.gotKind)
			assert.Equal(t, txID, svc.gotReq.TransactionID)
			assert.Equal(t, playerID, svc.gotReq.PlayerID)
			assert.True(t, decimal.RequireFromString("10.00").Equal(svc.gotReq.Amount))

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "90.00", resp["balance"])
			assert.Equal(t, txID.String(), resp["transactionId"])
		})
	}
}

func TestProcessHandlers_ErrorMapping(t *testing.T) {
	body, _, _ := validOperationBody(t)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not_found", err: players.ErrPlayerNotFound, wantStatus: http.StatusNotFound, wantCode: api.CodePlayerNotFound},
		{name: "insufficient_funds", err: wallet.ErrInsufficientFunds, wantStatus: http.StatusPaymentRequired, wantCode: api.CodeInsufficientFunds},
		{name: "conflict", err: wallet.ErrIdempotencyConflict, wantStatus: http.StatusConflict, wantCode: api.CodeIdempotencyConflict},
		{name: "internal", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantCode: api.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{processErr: tt.err}

			rec := doRequest(t, svc, http.MethodPost, "/api/v1/wallet/debit", body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var resp struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestProcessHandlers_Validation(t *testing.T) {
	txID := uuid.New().String()
	playerID := uuid.New().String()

	tests := []struct {
		name      string
		body      string
		wantInMsg string
	}{
		{
			name:      "empty_body",
			body:      "",
			wantInMsg: "body",
		},
		{
			name:      "malformed_json",
			body:      `{"transactionId":`,
			wantInMsg: "body",
		},
		{
			name:      "bad_transaction_id",
			body:      `{"transactionId":"nope","playerId":"` + playerID + `","amount":"1.00"}`,
			wantInMsg: "transactionId",
		},
		{
			name:      "bad_player_id",
			body:      `{"transactionId":"` + txID + `","playerId":"nope","amount":"1.00"}`,
			wantInMsg: "playerId",
		},
		{
			name:      "missing_amount",
			body:      `{"transactionId":"` + txID + `","playerId":"` + playerID + `"}`,
			wantInMsg: "amount",
		},
		{
			name:      "negative_amount",
			body:      `{"transactionId":"` + txID + `","playerId":"` + playerID + `","amount":"-1.00"}`,
			wantInMsg: "amount",
		},
		{
			name:      "zero_amount",
			body:      `{"transactionId":"` + txID + `","playerId":"` + playerID + `","amount":"0"}`,
			wantInMsg: "amount",
		},
		{
			name:      "too_many_decimals",
			body:      `{"transactionId":"` + txID + `","playerId":"` + playerID + `","amount":"1.234"}`,
			wantInMsg: "amount",
		},
		{
			name:      "amount_not_a_number",
			body:      `{"transactionId":"` + txID + `","playerId":"` + playerID + `","amount":"ten"}`,
			wantInMsg: "amount",
		},
		{
			name:      "unknown_field",
			body:      `{"transactionId":"` + txID + `","playerId":"` + playerID + `","amount":"1.00","extra":true}`,
			wantInMsg: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}

			rec := doRequest(t, svc, http.MethodPost, "/api/v1/wallet/credit", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var resp struct {
				Error   string   `json:"error"`
				Message []string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, api.CodeValidation, resp.Error)
			require.NotEmpty(t, resp.Message)
			assert.Contains(t, strings.Join(resp.Message, "; "), tt.wantInMsg)
		})
	}
}

func TestProcessHandlers_ValidationCollectsAllFields(t *testing.T) {
	svc := &stubService{}
	body := `{"transactionId":"nope","playerId":"nope","amount":"-1"}`

	rec := doRequest(t, svc, http.MethodPost, "/api/v1/wallet/debit", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message []string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Message, 3)
}

func TestBalanceHandler(t *testing.T) {
	playerID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		svc := &stubService{balance: decimal.RequireFromString("140.00")}

		rec := doRequest(t, svc, http.MethodGet, "/api/v1/wallet/players/"+playerID.String()+"/balance", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "140.00", resp["balance"])
		assert.Equal(t, playerID.String(), resp["playerId"])
	})

	t.Run("bad_id", func(t *testing.T) {
		rec := doRequest(t, &stubService{}, http.MethodGet, "/api/v1/wallet/players/nope/balance", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := &stubService{balanceErr: players.ErrPlayerNotFound}

		rec := doRequest(t, svc, http.MethodGet, "/api/v1/wallet/players/"+playerID.String()+"/balance", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHistoryHandler(t *testing.T) {
	playerID := uuid.New()

	svc := &stubService{history: []transactions.WalletTransaction{
		{
			TransactionID: uuid.New(),
			PlayerID:      playerID,
			Type:          transactions.TypeDebit,
			Amount:        decimal.RequireFromString("10.00"),
			BalanceAfter:  decimal.RequireFromString("90.00"),
			CreatedAt:     time.Now().UTC(),
		},
	}}

	rec := doRequest(t, svc, http.MethodGet, "/api/v1/wallet/players/"+playerID.String()+"/transactions", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		PlayerID     string `json:"playerId"`
		Transactions []struct {
			Type         string `json:"type"`
			Amount       string `json:"amount"`
			BalanceAfter string `json:"balanceAfter"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "DEBIT", resp.Transactions[0].Type)
	assert.Equal(t, "10.00", resp.Transactions[0].Amount)
	assert.Equal(t, "90.00", resp.Transactions[0].BalanceAfter)
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, &stubService{}, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
