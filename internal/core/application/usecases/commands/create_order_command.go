package commands

import (
	"errors"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// CreateOrderCommand represents a request to register a new shipment order.
// The order starts its lifecycle in Pending status, owned by the given client.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), clientID, "ORD-2024-0117", requestActor)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	clientID    kernel.UUID
	orderNumber string
	actor       actor.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new shipment order.
// Validates the identifiers, the order number, and the requesting actor.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	orderNumber string,
	requestedBy actor.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setOrderNumber(orderNumber),
		cmd.setActor(requestedBy),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the owning client (tenant) identifier.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// OrderNumber returns the business order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Actor returns the requesting actor.
func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setActor(requestedBy actor.Actor) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}

	c.actor = requestedBy
	return nil
}
