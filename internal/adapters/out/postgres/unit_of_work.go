// Package postgres provides the GORM-based Unit of Work for order writes.
//
// A unit of work wraps one database transaction. The order repository it hands
// out records every change it writes; once Commit succeeds those changes are
// passed to the ChangeNotifier so realtime views refresh. A rolled back unit of
// work announces nothing.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is meant for a single goroutine; concurrent operations
// take their own instance from the factory.
package postgres

import (
	"context"
	"log/slog"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool
// and one notifier.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	notifier ports.ChangeNotifier
	logger   *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory. A nil notifier disables change
// announcements.
func NewGormUnitOfWorkFactory(db *gorm.DB, notifier ports.ChangeNotifier, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:       db,
		notifier: notifier,
		logger:   logger.With("component", "unit_of_work"),
	}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		notifier: f.notifier,
		logger:   f.logger,
	}
}

// GormUnitOfWork coordinates one transaction and the changes written inside it.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	notifier ports.ChangeNotifier
	logger   *slog.Logger
	changes  []ports.OrderChange
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.changes = nil
	return nil
}

// Commit finalizes the transaction and announces the tracked changes.
// Notification failures are logged; the write itself has already succeeded.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.changes = nil
		return err
	}

	changes := uow.changes
	uow.changes = nil
	if uow.notifier == nil {
		return nil
	}
	for _, change := range changes {
		if notifyErr := uow.notifier.Notify(ctx, change); notifyErr != nil {
			uow.logger.Warn("change notification failed",
				"number", change.Number, "kind", change.Kind, "error", notifyErr)
		}
	}
	return nil
}

// Rollback discards the transaction and its tracked changes.
// Returns gorm.ErrInvalidTransaction when nothing is open, e.g. after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = nil
	return err
}

// OrderRepository returns a repository bound to the open transaction, or to the
// pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackChange records a change to announce after Commit. Called by repositories.
func (uow *GormUnitOfWork) TrackChange(change ports.OrderChange) {
	uow.changes = append(uow.changes, change)
}

// TrackedChanges returns the changes recorded since Begin.
func (uow *GormUnitOfWork) TrackedChanges() []ports.OrderChange {
	return append([]ports.OrderChange(nil), uow.changes...)
}
