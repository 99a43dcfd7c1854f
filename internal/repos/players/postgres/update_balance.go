package players

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/playnetic/wallet-service/internal/repos/players"
	"github.com/shopspring/decimal"
)

func (r *playersRepo) UpdateBalance(tx *sql.Tx, playerID uuid.UUID, balance decimal.Decimal) error {
	res, err := tx.Exec(`
		UPDATE players
		SET balance = $2
		WHERE id = $1
	`, playerID, balance)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return players.ErrPlayerNotFound
	}

	return nil
}
