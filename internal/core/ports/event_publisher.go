package ports

import (
	"context"

	"agrilogistics/internal/core/domain/model/order"
)

// EventPublisher announces committed allocations to downstream consumers.
type EventPublisher interface {
	PublishOrderAllocated(ctx context.Context, o *order.Order) error
}
