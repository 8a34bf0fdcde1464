package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it
// after Begin share its transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit makes the changes durable. Returns an error if Begin was not called.
	Commit(ctx context.Context) error

	// Rollback discards the changes. Returns an error if there is no active transaction.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ExecutorRepository() ExecutorRepository
}
