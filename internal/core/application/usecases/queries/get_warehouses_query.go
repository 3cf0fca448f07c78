package queries

import (
	"errors"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/pkg/guard"
)

var ErrGetWarehousesQueryIsNotConstructed = errors.New(
	"GetWarehousesQuery must be created via NewGetWarehousesQuery constructor",
)

// GetWarehousesQuery lists every warehouse for the admin dashboard.
//
// Example:
//
//	query := NewGetWarehousesQuery()
//	handler := NewGetWarehousesQueryHandler(readModel)
//
//	views, err := handler.Handle(ctx, query)
//	for _, v := range views {
//	    fmt.Printf("%s %.1f%% (%s)\n", v.Name, v.LoadPercent, v.LoadLevel)
//	}
type GetWarehousesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetWarehousesQuery() GetWarehousesQuery {
	return GetWarehousesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetWarehousesQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehousesQueryIsNotConstructed)
}

// WarehouseView is one dashboard row.
type WarehouseView struct {
	ID          kernel.UUID
	Name        string
	Region      warehouse.Region
	Location    kernel.Location
	Capacity    float64
	CurrentLoad float64
	LoadPercent float64
	LoadLevel   warehouse.LoadLevel
	Details     warehouse.Details
}

func newWarehouseView(w *warehouse.Warehouse) WarehouseView {
	return WarehouseView{
		ID:          w.ID(),
		Name:        w.Name(),
		Region:      w.Region(),
		Location:    w.Location(),
		Capacity:    w.Capacity(),
		CurrentLoad: w.CurrentLoad(),
		LoadPercent: w.LoadPercent(),
		LoadLevel:   w.LoadLevel(),
		Details:     w.Details(),
	}
}
