package repokit

import "context"

// BeginHook runs first inside every transaction, on the tx queryer
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns inner with hooks run ahead of fn in each Tx.
// A failing hook aborts the transaction
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
