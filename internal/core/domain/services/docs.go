// Package services provides domain services for the tracking system: business
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - StalenessClassifier: derives the traffic-light severity of an in-transit
//     order from the age of its last heartbeat
//
// Domain services are pure and side-effect free; orchestration and persistence
// live in the application layer.
package services
