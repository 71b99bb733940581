package commands

import (
	"context"

	"tracking/internal/pkg/errs"
)

// DeleteOrderCommandHandler soft-deletes orders with tenant scoping.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order soft deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the order as deleted. Missing or already-deleted orders yield
// an ObjectNotFoundError; tenant mismatch yields an AccessDeniedError.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, command DeleteOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	trackedOrder, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !command.Actor().CanManage(trackedOrder.ClientID()) {
		return errs.NewAccessDeniedError("order", command.OrderID().String())
	}

	statusAtRead := trackedOrder.Status()
	trackedOrder.MarkDeleted()

	// Conditional on the status read above, so a transition committed by a
	// concurrent request is never reverted by this full-row write.
	if err = ordersRepo.UpdateStatusFrom(ctx, trackedOrder, statusAtRead); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
