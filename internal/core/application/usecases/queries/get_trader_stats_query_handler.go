package queries

import (
	"context"
	"time"

	"agrilogistics/internal/core/ports"
)

// GetTraderStatsQueryHandler computes TraderStats from an OrderReadModel.
// An order is active for ActiveOrderWindow after it was created.
type GetTraderStatsQueryHandler struct {
	readModel ports.OrderReadModel
	now       func() time.Time
}

func NewGetTraderStatsQueryHandler(readModel ports.OrderReadModel, now func() time.Time) GetTraderStatsQueryHandler {
	return GetTraderStatsQueryHandler{readModel: readModel, now: now}
}

func (h GetTraderStatsQueryHandler) Handle(ctx context.Context, query GetTraderStatsQuery) (TraderStats, error) {
	if err := query.Validate(); err != nil {
		return TraderStats{}, err
	}

	totals, err := h.readModel.TraderTotals(ctx, query.TraderID(), h.now().Add(-ActiveOrderWindow))
	if err != nil {
		return TraderStats{}, readError("trader totals", err)
	}

	recent, err := h.readModel.ListTraderOrders(ctx, query.TraderID(), time.Time{}, RecentOrdersLimit)
	if err != nil {
		return TraderStats{}, readError("recent orders", err)
	}

	return TraderStats{
		TotalOrders:  totals.TotalOrders,
		ActiveOrders: totals.ActiveOrders,
		TotalVolume:  totals.TotalVolume,
		RecentOrders: recent,
	}, nil
}

