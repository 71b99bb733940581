package commands

import (
	"context"
	"errors"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
)

// ErrOrderNumberAlreadyExists is returned when the business order number is
// already taken by another order.
var ErrOrderNumberAlreadyExists = errors.New("order number already exists")

// CreateOrderCommandHandler registers new shipment orders.
// Enforces tenant scoping (non-privileged actors may only create orders for
// their own client) and order number uniqueness.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order.
// Returns an AccessDeniedError when the actor may not create orders for the
// target client, or ErrOrderNumberAlreadyExists on a duplicate order number.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if !command.Actor().CanManage(command.ClientID()) {
		return nil, errs.NewAccessDeniedError("clientID", command.ClientID().String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	existing, err := ordersRepo.GetByOrderNumber(ctx, command.OrderNumber())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrOrderNumberAlreadyExists
	}

	newOrder, err := order.NewOrder(command.OrderID(), command.ClientID(), command.OrderNumber(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = ordersRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
