// Package repokit binds repositories to a pool or to an open transaction
package repokit

import "judolguard/internal/platform/store"

type (
	// Queryer is what a bound repository runs its SQL on, a pool or a tx
	Queryer = store.RowQuerier
	// TxRunner opens transactions
	TxRunner = store.TxRunner
)

// Binder makes a repository of type T on top of q
type Binder[T any] interface {
	Bind(q Queryer) T
}

// MustBind binds b to q and panics on a nil q
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil queryer")
	}
	return b.Bind(q)
}
