package commands

import (
	"context"
	"log/slog"

	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// EscalateStaleOrdersCommandHandler performs one escalation sweep tick.
//
// The sweep scans all non-deleted in-transit orders, classifies the age of
// each heartbeat through the StalenessClassifier, and batch-persists only the
// orders whose severity actually changed. Unchanged orders produce no write
// at all, which makes an immediately repeated tick a no-op. The batched
// severity write never touches the heartbeat column: recoloring an order is
// an observation, not activity on the shipment.
//
// A fresh in-transit order with no severity yet differs from every computed
// level, so it is classified on its first tick ("none -> green" in the log).
type EscalateStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	classifier services.StalenessClassifier
	logger     *slog.Logger
}

// NewEscalateStaleOrdersCommandHandler creates a handler for sweep ticks.
func NewEscalateStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	classifier services.StalenessClassifier,
	logger *slog.Logger,
) EscalateStaleOrdersCommandHandler {
	return EscalateStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		classifier: classifier,
		logger:     logger.With("component", "escalation_sweep"),
	}
}

// Handle executes one sweep tick. Returns an error on storage failures; the
// scheduling job logs and swallows it, and the next tick self-heals since
// classification depends only on current time and stored heartbeats.
func (h EscalateStaleOrdersCommandHandler) Handle(ctx context.Context, command EscalateStaleOrdersCommand) error {
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

	activeOrders, err := ordersRepo.GetAllActiveInTransit(ctx)
	if err != nil {
		return err
	}

	updates := make([]ports.SeverityUpdate, 0, len(activeOrders))
	for _, activeOrder := range activeOrders {
		elapsed := command.ObservedAt().Sub(activeOrder.LastUpdateAt())
		newSeverity := h.classifier.Classify(elapsed)

		if newSeverity == activeOrder.Severity() {
			continue
		}

		h.logger.InfoContext(ctx, "Order severity changed",
			"order_number", activeOrder.OrderNumber(),
			"old_severity", activeOrder.Severity().String(),
			"new_severity", newSeverity.String(),
		)

		updates = append(updates, ports.SeverityUpdate{
			ID:       activeOrder.ID(),
			Severity: newSeverity,
		})
	}

	if len(updates) == 0 {
		return uow.Commit(ctx)
	}

	affected, err := ordersRepo.BatchUpdateSeverity(ctx, updates)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Escalation sweep tick completed", "updated_orders", affected)
	return nil
}
