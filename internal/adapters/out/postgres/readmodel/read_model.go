// Package readmodel answers the dashboard and trader-history reads with plain
// SQL over the tables owned by warehouserepo and orderrepo.
package readmodel

import (
	"context"
	"time"

	"agrilogistics/internal/adapters/out/postgres/warehouserepo"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReadModel implements ports.OrderReadModel and ports.WarehouseReadModel.
type GormReadModel struct {
	db *gorm.DB
}

func NewGormReadModel(db *gorm.DB) *GormReadModel {
	return &GormReadModel{db: db}
}

// ListWarehouses returns every warehouse ordered by name, then id.
func (m *GormReadModel) ListWarehouses(ctx context.Context) ([]*warehouse.Warehouse, error) {
	var dtos []warehouserepo.WarehouseDTO
	if err := m.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	warehouses := make([]*warehouse.Warehouse, 0, len(dtos))
	for _, dto := range dtos {
		w, err := warehouserepo.ToDomain(dto)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, nil
}

// ListTraderOrders joins the trader's orders with their warehouses, newest first.
func (m *GormReadModel) ListTraderOrders(
	ctx context.Context,
	traderID kernel.UUID,
	since time.Time,
	limit int,
) ([]ports.OrderView, error) {
	if err := traderID.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			o.id,
			o.farmer_name,
			o.farmer_address,
			o.crop_type,
			o.grade,
			o.quantity,
			o.distance_km,
			o.eta_minutes,
			o.created_at,
			o.warehouse_id,
			COALESCE(w.name, ''),
			COALESCE(w.location_lat, 0),
			COALESCE(w.location_lng, 0)
		FROM orders o
		LEFT JOIN warehouses w ON w.id = o.warehouse_id
		WHERE o.trader_id = ? AND o.created_at >= ?
		ORDER BY o.created_at DESC, o.id DESC`
	args := []any{traderID.Bytes(), since}
	if limit > 0 {
		sql += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := m.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ports.OrderView, 0)
	for rows.Next() {
		var (
			view            ports.OrderView
			id, warehouseID uuid.UUID
			whLat, whLng    float64
			createdAt       time.Time
		)

		err = rows.Scan(
			&id,
			&view.FarmerName,
			&view.FarmerAddress,
			&view.Crop,
			&view.Grade,
			&view.Quantity,
			&view.DistanceKm,
			&view.ETAMinutes,
			&createdAt,
			&warehouseID,
			&view.WarehouseName,
			&whLat,
			&whLng,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.WarehouseID, err = kernel.UUIDFromBytes(warehouseID[:]); err != nil {
			return nil, err
		}
		if view.WarehouseLocation, err = kernel.NewLocation(whLat, whLng); err != nil {
			return nil, err
		}
		view.CreatedAt = createdAt.UTC()

		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// TraderTotals counts the trader's orders and sums their quantity.
func (m *GormReadModel) TraderTotals(
	ctx context.Context,
	traderID kernel.UUID,
	activeSince time.Time,
) (ports.TraderTotals, error) {
	if err := traderID.Validate(); err != nil {
		return ports.TraderTotals{}, err
	}

	var row struct {
		Total  int
		Active int
		Volume float64
	}
	err := m.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE created_at >= ?) AS active,
			COALESCE(SUM(quantity), 0) AS volume
		FROM orders
		WHERE trader_id = ?
	`, activeSince, traderID.Bytes()).Scan(&row).Error
	if err != nil {
		return ports.TraderTotals{}, err
	}

	return ports.TraderTotals{
		TotalOrders:  row.Total,
		ActiveOrders: row.Active,
		TotalVolume:  row.Volume,
	}, nil
}
