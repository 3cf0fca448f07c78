// Package order provides the Order aggregate: the immutable record of one
// supply allocation.
//
// An order is created exactly once, by the capacity ledger, after a warehouse
// has been chosen and its capacity reserved. It carries the farmer's origin,
// the produce, the requested quantity and the computed distance and ETA.
// Nothing mutates an order after construction.
package order
