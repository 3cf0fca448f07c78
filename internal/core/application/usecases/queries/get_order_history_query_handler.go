package queries

import (
	"context"

	"agrilogistics/internal/core/ports"
)

type GetOrderHistoryQueryHandler struct {
	readModel ports.OrderReadModel
}

func NewGetOrderHistoryQueryHandler(readModel ports.OrderReadModel) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{readModel: readModel}
}

// Handle returns the orders joined with their warehouse name and coordinates.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]ports.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.readModel.ListTraderOrders(ctx, query.TraderID(), query.Since(), 0)
	if err != nil {
		return nil, readError("order history", err)
	}
	return orders, nil
}
