package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter registers all API endpoints.
func NewRouter(svc WalletService) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1/wallet", func(r chi.Router) {
		r.Post("/debit", h.DebitHandler)
		r.Post("/credit", h.CreditHandler)
		r.Get("/players/{playerId}/balance", h.BalanceHandler)
		r.Get("/players/{playerId}/transactions", h.HistoryHandler)
	})

	return r
}
