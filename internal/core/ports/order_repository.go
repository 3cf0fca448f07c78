package ports

import (
	"context"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are immutable once allocated, so the contract has no Update.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByTrader returns the trader's orders created at or after since,
	// newest first. A zero since returns the whole history.
	ListByTrader(ctx context.Context, traderID kernel.UUID, since time.Time) ([]*order.Order, error)
}
