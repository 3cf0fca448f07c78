// Package warehouse provides the Warehouse aggregate: a storage hub with a fixed
// capacity and a running load that orders are allocated against.
//
// Key business rules:
//   - Capacity is non-negative and fixed once the warehouse is registered
//   - 0 <= current load <= capacity at all times
//   - Load only grows, through Reserve, when an order is committed
//   - Every warehouse belongs to a Region; unrecognised regions are kept verbatim
//
// Warehouses are created by administrators and never deleted by the allocation
// flow.
package warehouse
