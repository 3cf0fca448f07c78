// Package kernel holds the value objects shared by the warehouse and order
// aggregates: identifiers and geographic locations.
//
// Both are immutable and safe for concurrent use. Their zero values are
// invalid; construct them through NewUUID / UUIDFromString and NewLocation.
package kernel
