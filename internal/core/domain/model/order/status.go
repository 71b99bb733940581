package order

import (
	"errors"
	"fmt"

	"tracking/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel unwrapped by InvalidTransitionError.
// Use errors.Is(err, ErrInvalidTransition) to classify transition failures.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of a shipment order.
// It implements a state machine with a directed allowed-transition graph:
// the four active states (InTransit, AtCheckpoint, Delayed, Incident) are
// mostly interconnected for operational flexibility, while Delivered and
// Cancelled are terminal with no outgoing transitions.
//
//	Pending ──> InTransit <──> AtCheckpoint
//	   │            │ ▲  ▲          │
//	   │            ▼ │  │          ▼
//	   │         Delayed <──> Incident
//	   │            │               │
//	   └──> Cancelled    Delivered <┘
//
// (Every active state may also move to Delivered or Cancelled.)
//
// Self-transitions are not listed in the graph and therefore fail validation.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status assigned at order creation.
	// The shipment has been registered but has not departed yet.
	StatusPending

	// StatusInTransit indicates the shipment is on the road.
	// Only orders in this status are subject to staleness escalation.
	StatusInTransit

	// StatusAtCheckpoint indicates the shipment is stopped at a control point.
	StatusAtCheckpoint

	// StatusDelivered indicates the shipment reached its destination.
	// Terminal: no further transitions are allowed.
	StatusDelivered

	// StatusCancelled indicates the order was called off.
	// Terminal: no further transitions are allowed.
	StatusCancelled

	// StatusDelayed indicates the shipment is running behind schedule.
	StatusDelayed

	// StatusIncident indicates an operational incident on the route.
	// Incidents can resolve back into normal transit.
	StatusIncident
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "Unknown",
		StatusPending:      "Pending",
		StatusInTransit:    "InTransit",
		StatusAtCheckpoint: "AtCheckpoint",
		StatusDelivered:    "Delivered",
		StatusCancelled:    "Cancelled",
		StatusDelayed:      "Delayed",
		StatusIncident:     "Incident",
	}
}

// getAllowedTransitions returns the allowed-transition graph.
// Returning a fresh map on every call keeps the single source of truth
// immutable: callers can never corrupt the shared table.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:      {StatusInTransit, StatusCancelled},
		StatusInTransit:    {StatusAtCheckpoint, StatusDelivered, StatusCancelled, StatusDelayed, StatusIncident},
		StatusAtCheckpoint: {StatusInTransit, StatusDelivered, StatusCancelled, StatusDelayed, StatusIncident},
		StatusDelayed:      {StatusInTransit, StatusAtCheckpoint, StatusDelivered, StatusCancelled, StatusIncident},
		StatusIncident:     {StatusInTransit, StatusAtCheckpoint, StatusDelivered, StatusCancelled},
		// Terminal states: no outgoing transitions.
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// StatusFromString parses a status by its string name, e.g. "InTransit".
// Used at the API boundary where statuses arrive in string form.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// InvalidTransitionError reports a status change that is absent from the
// allowed-transition graph. It carries both endpoints for debuggability.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Validate checks that the Status is one of the defined lifecycle states.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the graph allows moving from s to requested.
// A request with requested == s is checked against the table like any other
// request; since self-transitions are not listed, it returns false.
func (s Status) CanTransitionTo(requested Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == requested {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested transition and returns the new status.
// Returns an InvalidTransitionError if the graph forbids the move.
func (s Status) TransitionTo(requested Status) (Status, error) {
	if err := requested.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(requested) {
		return StatusUnknown, &InvalidTransitionError{From: s, To: requested}
	}
	return requested, nil
}
