package repository

import "context"

type Tx interface{}

// TransactionManager provides a thin abstraction to execute a function within
// a storage transaction, passing the underlying transaction handle via `tx`.
//
// RATIONALE
// - Keeps use-case interfaces clean (no transaction types leaking out).
// - Repository methods accept `tx Tx` and detect a live transaction
//   implementation-side (e.g. pgx.Tx for Postgres).
// - Repositories MUST gracefully accept a nil tx (non-transactional path).
//
// The payment commit path relies on this: debit, counter increment and
// receipt insert run inside one WithTx call so a failure leaves no partial
// effects.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
