package l3_service

import (
	"context"
	"database/sql"
	"fmt"
)

// txRunner runs fn in a transaction that commits only when fn succeeds.
type txRunner func(ctx context.Context, fn func(tx *sql.Tx) error) error

func dbTxRunner(db *sql.DB) txRunner {
	return func(ctx context.Context, fn func(tx *sql.Tx) error) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}
}
