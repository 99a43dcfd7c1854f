package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/playnetic/wallet-service/internal/infra/pgutils"
	"github.com/playnetic/wallet-service/internal/repos/players"
	pgplayers "github.com/playnetic/wallet-service/internal/repos/players/postgres"
	"github.com/playnetic/wallet-service/internal/repos/transactions"
	pgtransactions "github.com/playnetic/wallet-service/internal/repos/transactions/postgres"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrIdempotencyConflict = errors.New("transaction id reused for a different operation")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
)

// Request is one financial intent. TransactionID is the caller-chosen
// idempotency key; retrying the same id with the same parameters is
// always safe.
type Request struct {
	TransactionID uuid.UUID
	PlayerID      uuid.UUID
	Amount        decimal.Decimal
}

// Result reflects the balance after this operation, or after the
// original one when the request is an idempotent replay.
type Result struct {
	TransactionID uuid.UUID
	PlayerID      uuid.UUID
	Balance       decimal.Decimal
}

type Service struct {
	db      *sql.DB
	players players.Players
	txns    transactions.Transactions
}

func New(db *sql.DB) *Service {
	return &Service{
		db:      db,
		players: pgplayers.New(db),
		txns:    pgtransactions.New(db),
	}
}

// Process settles one debit or credit with exactly-once economic effect:
//
// 1) Probe the audit log by transaction id (no lock). A matching record
//    replays the stored result; a mismatched one is a conflict.
// 2) Lock the player row (FOR UPDATE); blocks until free.
// 3) Apply the kind's balance function to the locked balance.
// 4) Write the new balance.
// 5) Append the audit row; a unique-violation race maps to conflict.
//
// Steps 2-5 run inside one database transaction: every write lands or
// none do.
func (s *Service) Process(ctx context.Context, req Request, kind Kind) (Result, error) {
	if !req.Amount.IsPositive() {
		return Result{}, ErrNonPositiveAmount
	}

	stored, err := s.txns.FindByID(ctx, req.TransactionID)
	switch {
	case err == nil:
		return replayResult(stored, req, kind)
	case !errors.Is(err, transactions.ErrTransactionNotFound):
		return Result{}, fmt.Errorf("probe transaction: %w", err)
	}

	var newBalance decimal.Decimal

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		player, err := s.players.LockForUpdate(tx, req.PlayerID)
		if err != nil {
			return fmt.Errorf("lock player: %w", err)
		}

		newBalance, err = kind.apply(player.Balance, req.Amount)
		if err != nil {
			return err
		}

		err = s.players.UpdateBalance(tx, req.PlayerID, newBalance)
		if err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		err = s.txns.Insert(tx, transactions.WalletTransaction{
			TransactionID: req.TransactionID,
			PlayerID:      req.PlayerID,
			Type:          kind.transactionType(),
			Amount:        req.Amount,
			BalanceAfter:  newBalance,
		})
		if err != nil {
			// Lost the first-settlement race for this id; the winner's
			// row is authoritative.
			if errors.Is(err, transactions.ErrDuplicateTransaction) {
				return ErrIdempotencyConflict
			}

			return fmt.Errorf("insert transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		TransactionID: req.TransactionID,
		PlayerID:      req.PlayerID,
		Balance:       newBalance,
	}, nil
}

// replayResult returns the settled outcome for a retried request, or a
// conflict when the id was reused for a different logical operation.
// Amounts compare by exact decimal equality.
func replayResult(stored transactions.WalletTransaction, req Request, kind Kind) (Result, error) {
	if stored.PlayerID != req.PlayerID ||
		stored.Type != kind.transactionType() ||
		!stored.Amount.Equal(req.Amount) {
		return Result{}, ErrIdempotencyConflict
	}

	return Result{
		TransactionID: stored.TransactionID,
		PlayerID:      stored.PlayerID,
		Balance:       stored.BalanceAfter,
	}, nil
}

// Balance returns the player's current balance without locking.
func (s *Service) Balance(ctx context.Context, playerID uuid.UUID) (decimal.Decimal, error) {
	player, err := s.players.Get(ctx, playerID)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("get player: %w", err)
	}

	return player.Balance, nil
}

// History returns the player's settled transactions, newest first.
func (s *Service) History(ctx context.Context, playerID uuid.UUID) ([]transactions.WalletTransaction, error) {
	_, err := s.players.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	list, err := s.txns.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return list, nil
}
