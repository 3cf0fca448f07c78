package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over a shared Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

type reservation struct {
	warehouseID kernel.UUID
	quantity    float64
}

// UnitOfWork stages writes between Begin and Commit. Reads see committed
// state plus the unit's own staged writes.
//
// Commit takes the store lock and rechecks every staged reservation against
// the loads committed in the meantime. If any of them no longer fits the
// whole unit is discarded with ports.ErrCommitConflict.
//
// Without Begin every write is applied immediately.
type UnitOfWork struct {
	store  *Store
	active bool

	reservations  []reservation
	newWarehouses []warehouseRecord
	newOrders     []*order.Order

	tracked []any
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.discard()
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	defer func() {
		u.active = false
		u.discard()
	}()

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if err := u.store.checkApplicable(u.newWarehouses, u.reservations, u.newOrders); err != nil {
		return err
	}
	u.store.apply(u.newWarehouses, u.reservations, u.newOrders)
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false
	u.discard()
	u.tracked = nil
	return nil
}

func (u *UnitOfWork) WarehouseRepository() ports.WarehouseRepository {
	return &warehouseRepository{uow: u}
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) TrackedAggregates() []any {
	return append([]any(nil), u.tracked...)
}

func (u *UnitOfWork) discard() {
	u.reservations = nil
	u.newWarehouses = nil
	u.newOrders = nil
}

func (u *UnitOfWork) track(aggregate any) {
	u.tracked = append(u.tracked, aggregate)
}

// write stages the change or, outside a transaction, applies it at once.
func (u *UnitOfWork) write(whs []warehouseRecord, res []reservation, orders []*order.Order) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if err := u.store.checkApplicable(
		slices.Concat(u.newWarehouses, whs),
		slices.Concat(u.reservations, res),
		slices.Concat(u.newOrders, orders),
	); err != nil {
		return err
	}

	if !u.active {
		u.store.apply(whs, res, orders)
		return nil
	}
	u.newWarehouses = append(u.newWarehouses, whs...)
	u.reservations = append(u.reservations, res...)
	u.newOrders = append(u.newOrders, orders...)
	return nil
}

// warehouseView returns committed warehouses overlaid with the unit's staged
// warehouses and reservations.
func (u *UnitOfWork) warehouseView() map[kernel.UUID]warehouseRecord {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	view := make(map[kernel.UUID]warehouseRecord, len(u.store.warehouses)+len(u.newWarehouses))
	for id, r := range u.store.warehouses {
		view[id] = r
	}
	for _, r := range u.newWarehouses {
		view[r.id] = r
	}
	for _, res := range u.reservations {
		r := view[res.warehouseID]
		r.load += res.quantity
		view[res.warehouseID] = r
	}
	return view
}

// checkApplicable must be called with s.mu held.
func (s *Store) checkApplicable(whs []warehouseRecord, res []reservation, orders []*order.Order) error {
	pending := make(map[kernel.UUID]warehouseRecord, len(whs))
	for _, r := range whs {
		if _, exists := s.warehouses[r.id]; exists {
			return fmt.Errorf("warehouse %s already exists", r.id)
		}
		if _, exists := pending[r.id]; exists {
			return fmt.Errorf("warehouse %s already exists", r.id)
		}
		pending[r.id] = r
	}

	for _, rv := range res {
		r, ok := pending[rv.warehouseID]
		if !ok {
			r, ok = s.warehouses[rv.warehouseID]
		}
		if !ok {
			return errs.NewObjectNotFoundError("warehouse", rv.warehouseID.String())
		}
		if r.load+rv.quantity > r.capacity {
			return fmt.Errorf("%w: warehouse %s has %.2f free, %.2f requested",
				ports.ErrCommitConflict, r.id, r.capacity-r.load, rv.quantity)
		}
		r.load += rv.quantity
		pending[rv.warehouseID] = r
	}

	seen := make(map[kernel.UUID]struct{}, len(orders))
	for _, o := range orders {
		if _, exists := s.orderIndex[o.ID()]; exists {
			return fmt.Errorf("order %s already exists", o.ID())
		}
		if _, exists := seen[o.ID()]; exists {
			return fmt.Errorf("order %s already exists", o.ID())
		}
		seen[o.ID()] = struct{}{}
	}
	return nil
}

// apply must be called with s.mu held, after checkApplicable.
func (s *Store) apply(whs []warehouseRecord, res []reservation, orders []*order.Order) {
	for _, r := range whs {
		s.warehouses[r.id] = r
	}
	for _, rv := range res {
		r := s.warehouses[rv.warehouseID]
		r.load += rv.quantity
		s.warehouses[rv.warehouseID] = r
	}
	for _, o := range orders {
		s.orderIndex[o.ID()] = len(s.orders)
		s.orders = append(s.orders, o)
	}
}

var _ ports.WarehouseRepository = (*warehouseRepository)(nil)

type warehouseRepository struct {
	uow *UnitOfWork
}

func (r *warehouseRepository) Add(_ context.Context, aggregate *warehouse.Warehouse) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.write([]warehouseRecord{recordOf(aggregate)}, nil, nil); err != nil {
		return err
	}
	r.uow.track(aggregate)
	return nil
}

func (r *warehouseRepository) Get(_ context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	rec, ok := r.uow.warehouseView()[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("warehouse", id.String())
	}
	return rec.restore()
}

func (r *warehouseRepository) GetAll(ctx context.Context) ([]*warehouse.Warehouse, error) {
	return r.GetAllWithFreeCapacity(ctx, 0)
}

func (r *warehouseRepository) GetAllWithFreeCapacity(_ context.Context, minFree float64) ([]*warehouse.Warehouse, error) {
	records := make([]warehouseRecord, 0)
	for _, rec := range r.uow.warehouseView() {
		if rec.load+minFree <= rec.capacity {
			records = append(records, rec)
		}
	}
	sortByID(records)
	return restoreAll(records)
}

func (r *warehouseRepository) ReserveCapacity(_ context.Context, id kernel.UUID, quantity float64) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !(quantity > 0) {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	return r.uow.write(nil, []reservation{{warehouseID: id, quantity: quantity}}, nil)
}

var _ ports.OrderRepository = (*orderRepository)(nil)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.write(nil, nil, []*order.Order{aggregate}); err != nil {
		return err
	}
	r.uow.track(aggregate)
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	for _, o := range r.uow.newOrders {
		if o.ID().IsEqual(id) {
			return o, nil
		}
	}

	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.orderIndex[id]; ok {
		return s.orders[i], nil
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

func (r *orderRepository) ListByTrader(_ context.Context, traderID kernel.UUID, since time.Time) ([]*order.Order, error) {
	s := r.uow.store
	s.mu.RLock()
	orders := s.traderOrders(traderID, since)
	s.mu.RUnlock()

	for _, o := range r.uow.newOrders {
		if o.TraderID().IsEqual(traderID) && !o.CreatedAt().Before(since) {
			orders = append(orders, o)
		}
	}
	return newestFirst(orders), nil
}

func sortByID(records []warehouseRecord) {
	slices.SortFunc(records, func(a, b warehouseRecord) int {
		return a.id.Compare(b.id)
	})
}
