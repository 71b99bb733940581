package commands

import (
	"errors"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
)

// DeleteOrderCommand represents a request to soft-delete an order.
// Deleted orders are retained in storage but vanish from every lifecycle
// operation and from the escalation sweep's scan.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command to soft-delete an order.
func NewDeleteOrderCommand(orderID kernel.UUID, requestedBy actor.Actor) (DeleteOrderCommand, error) {
	cmd := DeleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(requestedBy),
	); err != nil {
		return DeleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeleteOrderCommandIsNotConstructed if validation fails.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to delete.
func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the requesting actor.
func (c DeleteOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c *DeleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeleteOrderCommand) setActor(requestedBy actor.Actor) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}

	c.actor = requestedBy
	return nil
}
