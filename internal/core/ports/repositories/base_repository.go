package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
// Repositories called with the ctx handed to fn take part in that transaction.
type TransactionManager interface {
	// RunInTx commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
