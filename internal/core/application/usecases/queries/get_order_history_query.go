package queries

import (
	"errors"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/pkg/errs"
	"agrilogistics/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists a trader's orders, newest first.
// A zero since returns the whole history.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(traderID, time.Now().Add(-24*time.Hour))
//	orders, err := handler.Handle(ctx, query)
type GetOrderHistoryQuery struct {
	traderID kernel.UUID
	since    time.Time

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(traderID kernel.UUID, since time.Time) (GetOrderHistoryQuery, error) {
	if err := traderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("trader id", err)
	}
	return GetOrderHistoryQuery{
		traderID: traderID,
		since:    since,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) TraderID() kernel.UUID {
	return q.traderID
}

func (q GetOrderHistoryQuery) Since() time.Time {
	return q.since
}
