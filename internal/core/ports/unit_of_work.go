package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per allocation or admin command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes the eligibility read, the capacity reservation and the
// order insert of one request. Callers Begin, defer Rollback and Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails with ErrCommitConflict when a staged reservation no longer fits.
	Commit(ctx context.Context) error

	// Rollback errors when no transaction is open, including after Commit;
	// deferred calls ignore that.
	Rollback(ctx context.Context) error

	WarehouseRepository() WarehouseRepository
	OrderRepository() OrderRepository

	// TrackedAggregates lists aggregates added through this unit of work,
	// in the order they were added.
	TrackedAggregates() []any
}
