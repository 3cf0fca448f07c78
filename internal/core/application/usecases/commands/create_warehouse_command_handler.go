package commands

import (
	"context"
	"log/slog"

	"agrilogistics/internal/core/domain/model/warehouse"
)

// CreateWarehouseCommandHandler persists a new warehouse with zero load.
type CreateWarehouseCommandHandler struct {
	uowFactory WarehouseUoWFactory
	logger     *slog.Logger
}

func NewCreateWarehouseCommandHandler(uowFactory WarehouseUoWFactory, logger *slog.Logger) CreateWarehouseCommandHandler {
	return CreateWarehouseCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "create_warehouse_handler"),
	}
}

// Handle creates the warehouse and returns it.
func (h CreateWarehouseCommandHandler) Handle(ctx context.Context, cmd CreateWarehouseCommand) (*warehouse.Warehouse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	w, err := warehouse.NewWarehouse(cmd.WarehouseID(), cmd.Name(), cmd.Region(), cmd.Location(), cmd.Capacity(), cmd.Details())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, storageError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WarehouseRepository().Add(ctx, w); err != nil {
		return nil, storageError("add warehouse", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, storageError("commit", err)
	}

	h.logger.InfoContext(ctx, "Warehouse created",
		"warehouse_id", w.ID().String(),
		"name", w.Name(),
		"region", w.Region().String(),
		"capacity", w.Capacity(),
	)
	return w, nil
}
