// Package order provides the domain model for tracked shipment orders.
//
// The package includes:
//   - Order: the aggregate root owning identity, lifecycle, and heartbeat
//   - Status: a state machine enforcing the allowed-transition graph
//   - Severity: the traffic-light staleness classification of in-transit orders
//
// Key business rules:
//   - Orders are created in Pending status and owned by exactly one client
//   - Status changes must follow the directed transition graph; Delivered and
//     Cancelled are terminal and seal the order against all further mutation
//   - Severity is derived from heartbeat staleness by the escalation sweep
//     and cannot be set through any API operation
//   - Soft-deleted orders are excluded from lifecycle and sweep operations
package order
