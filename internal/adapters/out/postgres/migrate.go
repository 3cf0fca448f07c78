package postgres

import (
	"agrilogistics/internal/adapters/out/postgres/orderrepo"
	"agrilogistics/internal/adapters/out/postgres/warehouserepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the warehouses and orders tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&warehouserepo.WarehouseDTO{}, &orderrepo.OrderDTO{})
}
