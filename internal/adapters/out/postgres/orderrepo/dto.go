// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders are written once at allocation and never updated.
package orderrepo

import (
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The composite index serves the trader history and statistics reads.
type OrderDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TraderID       uuid.UUID   `gorm:"type:uuid;not null;index:idx_orders_trader_created,priority:1"`
	FarmerName     string      `gorm:"type:varchar(255);not null"`
	FarmerAddress  string      `gorm:"type:text;not null"`
	FarmerLocation LocationDTO `gorm:"embedded;embeddedPrefix:farmer_"`
	CropType       string      `gorm:"type:varchar(128);not null"`
	Grade          string      `gorm:"type:varchar(64);not null"`
	Quantity       float64     `gorm:"type:double precision;not null"`
	WarehouseID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	DistanceKm     float64     `gorm:"type:double precision;not null"`
	ETAMinutes     int         `gorm:"column:eta_minutes;not null"`
	CreatedAt      time.Time   `gorm:"not null;index:idx_orders_trader_created,priority:2"`
}

// TableName overrides GORM's default "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the farm coordinates embedded in the order row.
type LocationDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

func fromDomain(o *order.Order) OrderDTO {
	farmer := o.Farmer()
	return OrderDTO{
		ID:            o.ID().Bytes(),
		TraderID:      o.TraderID().Bytes(),
		FarmerName:    farmer.Name,
		FarmerAddress: farmer.Address,
		FarmerLocation: LocationDTO{
			Lat: farmer.Location.Lat(),
			Lng: farmer.Location.Lng(),
		},
		CropType:    o.Produce().Crop,
		Grade:       o.Produce().Grade,
		Quantity:    o.Quantity(),
		WarehouseID: o.WarehouseID().Bytes(),
		DistanceKm:  o.DistanceKm(),
		ETAMinutes:  o.ETAMinutes(),
		CreatedAt:   o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	traderID, err := kernel.UUIDFromBytes(dto.TraderID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.FarmerLocation.Lat, dto.FarmerLocation.Lng)
	if err != nil {
		return nil, err
	}

	return order.NewOrder(
		id,
		traderID,
		order.Farmer{Name: dto.FarmerName, Address: dto.FarmerAddress, Location: loc},
		order.Produce{Crop: dto.CropType, Grade: dto.Grade},
		dto.Quantity,
		order.Assignment{WarehouseID: warehouseID, DistanceKm: dto.DistanceKm, ETAMinutes: dto.ETAMinutes},
		dto.CreatedAt,
	)
}
