package queries

import (
	"context"

	"agrilogistics/internal/core/ports"
)

// GetWarehousesQueryHandler reads the dashboard from a WarehouseReadModel.
type GetWarehousesQueryHandler struct {
	readModel ports.WarehouseReadModel
}

func NewGetWarehousesQueryHandler(readModel ports.WarehouseReadModel) GetWarehousesQueryHandler {
	return GetWarehousesQueryHandler{readModel: readModel}
}

// Handle returns every warehouse ordered by name, with load percent rounded
// to one decimal place and its load level.
func (h GetWarehousesQueryHandler) Handle(ctx context.Context, query GetWarehousesQuery) ([]WarehouseView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	whs, err := h.readModel.ListWarehouses(ctx)
	if err != nil {
		return nil, readError("list warehouses", err)
	}

	views := make([]WarehouseView, 0, len(whs))
	for _, w := range whs {
		views = append(views, newWarehouseView(w))
	}
	return views, nil
}
