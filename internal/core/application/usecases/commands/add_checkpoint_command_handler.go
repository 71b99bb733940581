package commands

import (
	"context"
	"errors"
	"time"

	"tracking/internal/core/domain/model/checkpoint"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
)

// ErrOrderIsNotInTransit is returned when a checkpoint report is attempted on
// an order outside InTransit status. Reports are only meaningful for
// shipments on the road.
var ErrOrderIsNotInTransit = errors.New("checkpoints can only be added to orders in transit")

// AddCheckpointCommandHandler records checkpoint reports and refreshes the
// owning order's heartbeat within the same transaction. The heartbeat refresh
// is what resets the staleness clock: an order that keeps reporting stays
// green.
//
// Access uses view scoping: supervisors and operators may report on any
// active shipment, clients only on their own.
type AddCheckpointCommandHandler struct {
	uowFactory UoWFactory
}

// NewAddCheckpointCommandHandler creates a handler for checkpoint reports.
// Requires a cross-aggregate UoWFactory since the checkpoint insert and the
// order heartbeat update must commit atomically.
func NewAddCheckpointCommandHandler(uowFactory UoWFactory) AddCheckpointCommandHandler {
	return AddCheckpointCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records a checkpoint report and returns it.
func (h AddCheckpointCommandHandler) Handle(ctx context.Context, command AddCheckpointCommand) (*checkpoint.Checkpoint, error) {
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
	checkpointsRepo := uow.CheckpointRepository()

	trackedOrder, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if !command.Actor().CanView(trackedOrder.ClientID()) {
		return nil, errs.NewAccessDeniedError("order", command.OrderID().String())
	}

	if trackedOrder.Status() != order.StatusInTransit {
		return nil, ErrOrderIsNotInTransit
	}

	now := time.Now().UTC()

	report, err := checkpoint.NewCheckpoint(
		command.CheckpointID(),
		command.OrderID(),
		command.LocationName(),
		command.Sequence(),
		command.Notes(),
		command.Point(),
		now,
		command.ReportedBy(),
	)
	if err != nil {
		return nil, err
	}

	if err = checkpointsRepo.Add(ctx, report); err != nil {
		return nil, err
	}

	// Conditional on the status read above, so a transition committed by a
	// concurrent request is never reverted by the heartbeat write.
	trackedOrder.Touch(now)
	if err = ordersRepo.UpdateStatusFrom(ctx, trackedOrder, order.StatusInTransit); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return report, nil
}
