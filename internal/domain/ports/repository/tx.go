package repository

import "context"

// Tx is a storage-defined transaction handle (pgx.Tx, *sql.Tx). Repositories
// accept NoTX to run outside a transaction.
type Tx interface{}

var NoTX Tx

// TransactionManager runs fn inside a transaction, committing when fn returns nil.
//
// tm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
//	p, err := prefs.Get(ctx, tx, userID)
//	...
//	return prefs.Upsert(ctx, tx, p)
// })
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
