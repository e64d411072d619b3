package store

import "context"

// InRun tags ctx with runID and calls fn inside a transaction on tx
func InRun(ctx context.Context, tx TxRunner, runID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithRunID(ctx, runID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
