package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/shopcheckout/internal/db"
)

// beginner is satisfied by *pgxpool.Pool and by pgx.Tx, where Begin opens a savepoint.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withTx runs fn in its own transaction, or in a savepoint when the repository
// was built on an outer transaction. A failed fn never leaves partial rows behind.
func withTx[T any](ctx context.Context, dbtx db.DBTX, fn func(q *db.Queries) (T, error)) (_ T, err error) {
	var zero T

	b, ok := dbtx.(beginner)
	if !ok {
		return zero, fmt.Errorf("dbtx[%T] cannot begin a transaction", dbtx)
	}

	tx, err := b.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("Begin: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}
		// rollback must run even when ctx itself is what failed
		rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("tx.Rollback: %w", rollbackErr))
		}
	}()

	result, err := fn(db.New(tx))
	if err != nil {
		return zero, err
	}

	// a deferred constraint would only fail here, so classify commit errors too
	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", mapWriteError(err))
	}

	return result, nil
}
