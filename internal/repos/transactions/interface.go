package transactions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrTransactionNotFound  = errors.New("transaction not found")
)

type Type string

const (
	TypeDebit  Type = "DEBIT"
	TypeCredit Type = "CREDIT"
)

// WalletTransaction is one immutable audit row. TransactionID is
// caller-chosen and doubles as the idempotency key; BalanceAfter is the
// player's balance right after this row was applied.
type WalletTransaction struct {
	TransactionID uuid.UUID
	PlayerID      uuid.UUID
	Type          Type
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time
}

type Transactions interface {
	// FindByID is the idempotency probe. Rows are immutable, so no
	// locking is needed.
	FindByID(ctx context.Context, transactionID uuid.UUID) (WalletTransaction, error)

	// Insert appends the audit row inside the open transaction. A
	// primary-key collision surfaces as ErrDuplicateTransaction.
	Insert(tx *sql.Tx, wt WalletTransaction) error

	// ListByPlayer returns the player's history, newest first.
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]WalletTransaction, error)
}
