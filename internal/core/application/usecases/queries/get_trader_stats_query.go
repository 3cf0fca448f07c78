package queries

import (
	"errors"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"
	"agrilogistics/internal/pkg/guard"
)

const (
	// ActiveOrderWindow is how long after creation an order counts as active.
	ActiveOrderWindow = 15 * time.Minute
	// RecentOrdersLimit caps the recent orders returned with the stats.
	RecentOrdersLimit = 5
)

var ErrGetTraderStatsQueryIsNotConstructed = errors.New(
	"GetTraderStatsQuery must be created via NewGetTraderStatsQuery constructor",
)

// GetTraderStatsQuery summarises a trader's order book.
type GetTraderStatsQuery struct {
	traderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTraderStatsQuery(traderID kernel.UUID) (GetTraderStatsQuery, error) {
	if err := traderID.Validate(); err != nil {
		return GetTraderStatsQuery{}, errs.NewValueIsRequiredErrorWithCause("trader id", err)
	}
	return GetTraderStatsQuery{
		traderID: traderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetTraderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetTraderStatsQueryIsNotConstructed)
}

func (q GetTraderStatsQuery) TraderID() kernel.UUID {
	return q.traderID
}

// TraderStats is the trader dashboard header.
type TraderStats struct {
	TotalOrders  int
	ActiveOrders int
	TotalVolume  float64
	RecentOrders []ports.OrderView
}
