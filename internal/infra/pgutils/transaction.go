package pgutils

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx is the unit-of-work boundary: it runs fn inside one database
// transaction, committing when fn returns nil and rolling back on any
// error or on ctx cancellation while fn is blocked. Row locks taken by
// fn are released on either exit path.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil) // default isolation level
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	err = fn(tx)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("rollback after fn error: %v (fn err: %w)", rbErr, err)
		}

		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
