package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/playnetic/wallet-service/internal/repos/players"
)

func (r *playersRepo) Get(ctx context.Context, playerID uuid.UUID) (players.Player, error) {
	var p players.Player

	// balance::text so NUMERIC survives database/sql without a float round-trip
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, balance::text
		FROM players
		WHERE id = $1
	`, playerID).Scan(&p.ID, &p.Name, &p.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return players.Player{}, players.ErrPlayerNotFound
		}

		return players.Player{}, fmt.Errorf("get player: %w", err)
	}

	return p, nil
}
