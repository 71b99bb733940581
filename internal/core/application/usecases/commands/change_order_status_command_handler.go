package commands

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies validated status transitions to
// persisted orders. It enforces, in this sequence:
//
//  1. the order exists and is not soft-deleted (ObjectNotFoundError)
//  2. the actor's tenant scope covers the order (AccessDeniedError)
//  3. the transition is present in the lifecycle graph (InvalidTransitionError)
//
// Each failure unwraps to a distinct sentinel so callers can translate them
// into distinct outward signals. The persisted update is conditional on the
// previously read status, so of two racing transitions at most one applies.
//
// After a successful commit the handler publishes an OrderStatusChangedEvent;
// publish failures are logged, never returned, since the transition already
// happened.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
// publisher may be nil when no broker is configured.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "change_order_status"),
	}
}

// Handle processes the status change and returns the updated order.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) (*order.Order, error) {
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

	previousStatus := trackedOrder.Status()
	if err = trackedOrder.ChangeStatus(command.Status(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = ordersRepo.UpdateStatusFrom(ctx, trackedOrder, previousStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishStatusChanged(ctx, trackedOrder, previousStatus)

	return trackedOrder, nil
}

func (h ChangeOrderStatusCommandHandler) publishStatusChanged(ctx context.Context, updated *order.Order, previous order.Status) {
	if h.publisher == nil {
		return
	}

	event := ports.OrderStatusChangedEvent{
		OrderID:     updated.ID().String(),
		OrderNumber: updated.OrderNumber(),
		OldStatus:   previous.String(),
		NewStatus:   updated.Status().String(),
		ChangedAt:   updated.LastUpdateAt(),
	}

	if err := h.publisher.PublishStatusChanged(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish status changed event",
			"order_number", updated.OrderNumber(), "error", err)
	}
}
