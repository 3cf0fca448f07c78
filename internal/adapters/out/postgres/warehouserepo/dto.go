// Package warehouserepo persists warehouse aggregates with GORM. The capacity
// check-and-increment is a single conditional UPDATE so that concurrent
// transactions serialise on the warehouse row.
package warehouserepo

import (
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

// WarehouseDTO represents the database structure for persisting warehouse aggregates.
type WarehouseDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name          string      `gorm:"type:varchar(255);not null"`
	Region        string      `gorm:"type:varchar(64);not null;index"`
	Location      LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Address       string      `gorm:"type:text"`
	ManagerName   string      `gorm:"type:varchar(255)"`
	ContactNumber string      `gorm:"type:varchar(64)"`
	Capacity      float64     `gorm:"type:double precision;not null;check:chk_warehouses_capacity,capacity >= 0"`
	CurrentLoad   float64     `gorm:"type:double precision;not null;default:0;check:chk_warehouses_load,current_load >= 0 AND current_load <= capacity"`
}

// TableName overrides GORM's default "warehouse_dtos".
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

// LocationDTO represents the embedded coordinates in decimal degrees.
type LocationDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

func fromDomain(w *warehouse.Warehouse) WarehouseDTO {
	details := w.Details()
	return WarehouseDTO{
		ID:     w.ID().Bytes(),
		Name:   w.Name(),
		Region: w.Region().String(),
		Location: LocationDTO{
			Lat: w.Location().Lat(),
			Lng: w.Location().Lng(),
		},
		Address:       details.Address,
		ManagerName:   details.ManagerName,
		ContactNumber: details.ContactNumber,
		Capacity:      w.Capacity(),
		CurrentLoad:   w.CurrentLoad(),
	}
}

// ToDomain rebuilds the aggregate from a DTO.
func ToDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Lat, dto.Location.Lng)
	if err != nil {
		return nil, err
	}

	return warehouse.RestoreWarehouse(
		id,
		dto.Name,
		warehouse.Region(dto.Region),
		loc,
		dto.Capacity,
		dto.CurrentLoad,
		warehouse.Details{
			Address:       dto.Address,
			ManagerName:   dto.ManagerName,
			ContactNumber: dto.ContactNumber,
		},
	)
}
