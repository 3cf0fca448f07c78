package warehouserepo

import (
	"context"
	"errors"
	"fmt"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWarehouseRepository implements ports.WarehouseRepository using GORM.
type GormWarehouseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormWarehouseRepository(db *gorm.DB, tracker aggregateTracker) *GormWarehouseRepository {
	return &GormWarehouseRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new warehouse to the database.
func (r *GormWarehouseRepository) Add(ctx context.Context, aggregate *warehouse.Warehouse) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a warehouse by ID.
func (r *GormWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WarehouseDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("warehouse", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// GetAll retrieves every warehouse ordered by id.
func (r *GormWarehouseRepository) GetAll(ctx context.Context) ([]*warehouse.Warehouse, error) {
	var dtos []WarehouseDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

// GetAllWithFreeCapacity retrieves warehouses that can hold at least minFree more, ordered by id.
// The comparison is written as current_load + minFree <= capacity, the same form
// ReserveCapacity and the domain use, so all three agree at the boundary.
func (r *GormWarehouseRepository) GetAllWithFreeCapacity(
	ctx context.Context,
	minFree float64,
) ([]*warehouse.Warehouse, error) {
	var dtos []WarehouseDTO
	err := r.db.WithContext(ctx).
		Where("current_load + ? <= capacity", minFree).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

// ReserveCapacity conditionally increments current_load.
//
// The UPDATE takes the row lock; a concurrent transaction holding it makes this
// one wait and then re-evaluate the condition against the committed load.
func (r *GormWarehouseRepository) ReserveCapacity(ctx context.Context, id kernel.UUID, quantity float64) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !(quantity > 0) {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}

	result := r.db.WithContext(ctx).
		Model(&WarehouseDTO{}).
		Where("id = ? AND current_load + ? <= capacity", id.Bytes(), quantity).
		UpdateColumn("current_load", gorm.Expr("current_load + ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&WarehouseDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("warehouse", id.String())
		}
		return fmt.Errorf("%w: warehouse %s cannot take %.2f more", ports.ErrCommitConflict, id, quantity)
	}

	return nil
}

func toDomainAll(dtos []WarehouseDTO) ([]*warehouse.Warehouse, error) {
	warehouses := make([]*warehouse.Warehouse, 0, len(dtos))
	for _, dto := range dtos {
		w, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, nil
}
