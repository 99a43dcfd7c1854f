package players

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrPlayerNotFound = errors.New("player not found")

// Player is one mutable ledger row. Balance is an exact decimal at
// 2-digit scale and never goes negative.
type Player struct {
	ID      uuid.UUID
	Name    string
	Balance decimal.Decimal
}

type Players interface {
	// Get reads a player without locking; for display endpoints only.
	Get(ctx context.Context, playerID uuid.UUID) (Player, error)

	// LockForUpdate reads the player row with FOR UPDATE. It blocks
	// until any other transaction holding the row lock finishes; the
	// lock is released when tx commits or rolls back.
	LockForUpdate(tx *sql.Tx, playerID uuid.UUID) (Player, error)

	// UpdateBalance writes the new balance inside the open transaction.
	UpdateBalance(tx *sql.Tx, playerID uuid.UUID, balance decimal.Decimal) error
}
