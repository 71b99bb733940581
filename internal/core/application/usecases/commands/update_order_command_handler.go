package commands

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies free-form field updates to orders.
// Terminal orders reject the update with order.ErrOrderIsLocked.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order field updates.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the field update and returns the updated order.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, command UpdateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	trackedOrder, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if !command.Actor().CanManage(trackedOrder.ClientID()) {
		return nil, errs.NewAccessDeniedError("order", command.OrderID().String())
	}

	statusAtRead := trackedOrder.Status()
	if err = trackedOrder.ApplyChanges(command.Changes(), time.Now().UTC()); err != nil {
		return nil, err
	}

	// Conditional on the status read above, so a transition committed by a
	// concurrent request is never reverted by this full-row write.
	if err = ordersRepo.UpdateStatusFrom(ctx, trackedOrder, statusAtRead); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return trackedOrder, nil
}
