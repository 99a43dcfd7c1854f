package players

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/playnetic/wallet-service/internal/repos/players"
)

// LockForUpdate takes the row-level exclusive lock that serializes all
// balance mutations for one player. Blocks until the current holder's
// transaction ends.
func (r *playersRepo) LockForUpdate(tx *sql.Tx, playerID uuid.UUID) (players.Player, error) {
	var p players.Player

	err := tx.QueryRow(`
		SELECT id, name, balance::text
		FROM players
		WHERE id = $1
		FOR UPDATE
	`, playerID).Scan(&p.ID, &p.Name, &p.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return players.Player{}, players.ErrPlayerNotFound
		}

		return players.Player{}, fmt.Errorf("lock player: %w", err)
	}

	return p, nil
}
