package commands

import (
	"errors"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// UpdateOrderCommand represents a free-form field update on an order.
// Field updates bypass the transition graph but are rejected outright on
// terminal orders: a delivered or cancelled order is read-only for all
// fields, not just status.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	changes order.OrderChanges
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command carrying the fields to change.
// Nil fields in changes are left untouched by the handler.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	changes order.OrderChanges,
	requestedBy actor.Actor,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(requestedBy),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderCommandIsNotConstructed if validation fails.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Changes returns the requested field changes.
func (c UpdateOrderCommand) Changes() order.OrderChanges {
	return c.changes
}

// Actor returns the requesting actor.
func (c UpdateOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setActor(requestedBy actor.Actor) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}

	c.actor = requestedBy
	return nil
}
