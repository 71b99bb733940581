package order

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsLocked is returned when any mutation is attempted on a terminal
	// (delivered or cancelled) order. Terminal orders are read-only for all
	// fields, not just status.
	ErrOrderIsLocked = errors.New("order is delivered or cancelled and can no longer be modified")

	// ErrOrderNumberIsRequired is returned when an order is created without a
	// business order number.
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// Order is the aggregate root for a tracked shipment. It owns the status
// lifecycle, the staleness severity level, and the last-update heartbeat the
// escalation sweep classifies against.
//
// Invariants:
//   - Must have a valid unique identifier and owning client (tenant)
//   - Must have a non-empty order number
//   - Status changes follow the allowed-transition graph
//   - Severity is derived by the sweep, never set by API consumers
//   - Delivered and Cancelled orders reject every further mutation
//
// The last-update timestamp is a heartbeat, not an audit field: it is
// refreshed by checkpoint reports and lifecycle changes, and deliberately
// left untouched when the sweep records a new severity.
type Order struct {
	id       kernel.UUID
	clientID kernel.UUID

	orderNumber      string
	vehicleID        *kernel.UUID
	escortID         *kernel.UUID
	routeDescription string
	notes            string

	status       Status
	severity     Severity
	lastUpdateAt time.Time
	departureAt  *time.Time
	arrivalAt    *time.Time

	isDeleted bool

	isConstructed bool
}

// OrderChanges describes a free-form field update. Nil fields are left
// unchanged; non-nil fields are applied.
type OrderChanges struct {
	VehicleID        *kernel.UUID
	EscortID         *kernel.UUID
	RouteDescription *string
	Notes            *string
}

// NewOrder creates a shipment order in Pending status owned by the given
// client. createdAt seeds the last-update heartbeat.
func NewOrder(id kernel.UUID, clientID kernel.UUID, orderNumber string, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		severity:      SeverityNone,
		lastUpdateAt:  createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setOrderNumber(orderNumber),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without running the
// creation rules, validating identifiers and enum values.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	orderNumber string,
	vehicleID *kernel.UUID,
	escortID *kernel.UUID,
	routeDescription string,
	notes string,
	status Status,
	severity Severity,
	lastUpdateAt time.Time,
	departureAt *time.Time,
	arrivalAt *time.Time,
	isDeleted bool,
) (*Order, error) {
	o := &Order{
		vehicleID:        vehicleID,
		escortID:         escortID,
		routeDescription: routeDescription,
		notes:            notes,
		lastUpdateAt:     lastUpdateAt,
		departureAt:      departureAt,
		arrivalAt:        arrivalAt,
		isDeleted:        isDeleted,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setOrderNumber(orderNumber),
		o.setStatus(status),
		o.setSeverity(severity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. Call when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the owning client (tenant) identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// OrderNumber returns the business order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// VehicleID returns the assigned vehicle's ID, or nil if unassigned.
func (o *Order) VehicleID() *kernel.UUID {
	return o.vehicleID
}

// EscortID returns the assigned escort agent's ID, or nil if unassigned.
func (o *Order) EscortID() *kernel.UUID {
	return o.escortID
}

// RouteDescription returns the free-text route description.
func (o *Order) RouteDescription() string {
	return o.routeDescription
}

// Notes returns the free-text notes.
func (o *Order) Notes() string {
	return o.notes
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Severity returns the last severity recorded by the escalation sweep.
// Meaningful only while the order is in transit.
func (o *Order) Severity() Severity {
	return o.severity
}

// LastUpdateAt returns the heartbeat timestamp.
func (o *Order) LastUpdateAt() time.Time {
	return o.lastUpdateAt
}

// DepartureAt returns the departure timestamp, or nil before activation.
func (o *Order) DepartureAt() *time.Time {
	return o.departureAt
}

// ArrivalAt returns the arrival timestamp, or nil until delivery.
func (o *Order) ArrivalAt() *time.Time {
	return o.arrivalAt
}

// IsDeleted reports whether the order has been soft-deleted.
func (o *Order) IsDeleted() bool {
	return o.isDeleted
}

// ChangeStatus applies a validated lifecycle transition at the given time.
//
// The transition must be present in the allowed-transition graph; terminal
// orders have no outgoing transitions, so any request on them fails with an
// InvalidTransitionError. On success the heartbeat is refreshed. Moving into
// Delivered additionally records the arrival timestamp, and the first move
// into InTransit records the departure timestamp.
func (o *Order) ChangeStatus(requested Status, at time.Time) error {
	newStatus, err := o.status.TransitionTo(requested)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.lastUpdateAt = at

	switch newStatus {
	case StatusDelivered:
		arrival := at
		o.arrivalAt = &arrival
	case StatusInTransit:
		if o.departureAt == nil {
			departure := at
			o.departureAt = &departure
		}
	}

	return nil
}

// ApplyChanges performs a free-form field update outside the transition
// graph. Rejected with ErrOrderIsLocked when the order is terminal.
// The heartbeat is refreshed since a field edit is a lifecycle-relevant change.
func (o *Order) ApplyChanges(changes OrderChanges, at time.Time) error {
	if o.status.IsTerminal() {
		return ErrOrderIsLocked
	}

	if changes.VehicleID != nil {
		if err := changes.VehicleID.Validate(); err != nil {
			return err
		}
		vehicleID := *changes.VehicleID
		o.vehicleID = &vehicleID
	}
	if changes.EscortID != nil {
		if err := changes.EscortID.Validate(); err != nil {
			return err
		}
		escortID := *changes.EscortID
		o.escortID = &escortID
	}
	if changes.RouteDescription != nil {
		o.routeDescription = *changes.RouteDescription
	}
	if changes.Notes != nil {
		o.notes = *changes.Notes
	}

	o.lastUpdateAt = at
	return nil
}

// Touch refreshes the heartbeat. Called when a checkpoint report is added;
// the status is left unchanged.
func (o *Order) Touch(at time.Time) {
	o.lastUpdateAt = at
}

// ApplySeverity records a severity computed by the escalation sweep.
// Deliberately does not refresh the heartbeat: severity recomputation is
// observational, not a lifecycle event.
func (o *Order) ApplySeverity(severity Severity) error {
	if err := severity.Validate(); err != nil {
		return err
	}
	o.severity = severity
	return nil
}

// MarkDeleted soft-deletes the order, removing it from lifecycle operations
// and the escalation sweep while retaining the row in storage.
func (o *Order) MarkDeleted() {
	o.isDeleted = true
}

// IsOwnedBy reports whether the order belongs to the given client.
func (o *Order) IsOwnedBy(clientID kernel.UUID) bool {
	return o.clientID.IsEqual(clientID)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setSeverity(severity Severity) error {
	if err := severity.Validate(); err != nil {
		return err
	}
	o.severity = severity
	return nil
}
