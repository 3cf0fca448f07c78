// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - AllocationPolicy: picks the nearest warehouse able to hold an order and
//     estimates the delivery time for it
//
// Services here are pure: they decide over the values handed to them and never
// touch storage.
package services
