package commands

import (
	"errors"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a request to move an order through the
// status lifecycle graph. The requested status is validated against the
// current status by the handler; the command only checks that the requested
// status is a defined lifecycle state.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.StatusInTransit, requestActor)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // order missing or soft-deleted
//	case errors.Is(err, errs.ErrAccessDenied):
//	    // tenant mismatch
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // move not allowed by the graph
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to request a status change.
// Validates the order ID, the target status, and the requesting actor.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	requestedBy actor.Actor,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActor(requestedBy),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// NewActivateOrderCommand is a convenience constructor for the transition
// into InTransit (the shipment departs).
func NewActivateOrderCommand(orderID kernel.UUID, requestedBy actor.Actor) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.StatusInTransit, requestedBy)
}

// NewFinalizeOrderCommand is a convenience constructor for the transition
// into Delivered. The handler records the arrival timestamp as part of the
// same update.
func NewFinalizeOrderCommand(orderID kernel.UUID, requestedBy actor.Actor) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.StatusDelivered, requestedBy)
}

// NewCancelOrderCommand is a convenience constructor for the transition
// into Cancelled.
func NewCancelOrderCommand(orderID kernel.UUID, requestedBy actor.Actor) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.StatusCancelled, requestedBy)
}

// Validate ensures the command was created through a constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested target status.
func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

// Actor returns the requesting actor.
func (c ChangeOrderStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(requestedBy actor.Actor) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}

	c.actor = requestedBy
	return nil
}
