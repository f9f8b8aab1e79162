package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of an order write.
// Orders touched by its repository are announced to the ChangeNotifier once Commit succeeds;
// nothing is announced after Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is open, so a deferred Rollback after
	// a successful Commit is harmless.
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the open transaction.
	OrderRepository() OrderRepository
}
