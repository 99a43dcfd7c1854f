package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/playnetic/wallet-service/internal/repos/transactions"
)

var _ transactions.Transactions = (*transactionsRepo)(nil)

type transactionsRepo struct{ db *sql.DB }

func New(db *sql.DB) *transactionsRepo {
	return &transactionsRepo{db: db}
}

func (r *transactionsRepo) FindByID(ctx context.Context, transactionID uuid.UUID) (transactions.WalletTransaction, error) {
	var wt transactions.WalletTransaction

	err := r.db.QueryRowContext(ctx, `
		SELECT transaction_id, player_id, type, amount::text, balance_after::text, created_at
		FROM wallet_transactions
		WHERE transaction_id = $1
	`, transactionID).Scan(
		&wt.TransactionID,
		&wt.PlayerID,
		&wt.Type,
		&wt.Amount,
		&wt.BalanceAfter,
		&wt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transactions.WalletTransaction{}, transactions.ErrTransactionNotFound
		}

		return transactions.WalletTransaction{}, fmt.Errorf("find transaction: %w", err)
	}

	return wt, nil
}

func (r *transactionsRepo) Insert(tx *sql.Tx, wt transactions.WalletTransaction) error {
	_, err := tx.Exec(`
		INSERT INTO wallet_transactions (transaction_id, player_id, type, amount, balance_after)
		VALUES ($1, $2, $3, $4, $5)
	`, wt.TransactionID, wt.PlayerID, string(wt.Type), wt.Amount, wt.BalanceAfter)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return transactions.ErrDuplicateTransaction
			}
		}

		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

func (r *transactionsRepo) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]transactions.WalletTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT transaction_id, player_id, type, amount::text, balance_after::text, created_at
		FROM wallet_transactions
		WHERE player_id = $1
		ORDER BY created_at DESC, transaction_id
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []transactions.WalletTransaction

	for rows.Next() {
		var wt transactions.WalletTransaction

		err = rows.Scan(
			&wt.TransactionID,
			&wt.PlayerID,
			&wt.Type,
			&wt.Amount,
			&wt.BalanceAfter,
			&wt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		list = append(list, wt)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return list, nil
}
