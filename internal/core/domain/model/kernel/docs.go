// Package kernel provides shared value objects used across the tracking domain.
//
// The package includes:
//   - UUID: entity and aggregate identifiers, wrapping github.com/google/uuid
//   - GeoPoint: geographic coordinates reported at shipment checkpoints
//
// All types in this package are immutable value objects with factory
// constructors that enforce their invariants; zero values fail validation.
package kernel
