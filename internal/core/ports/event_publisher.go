package ports

import (
	"context"
	"time"
)

// OrderStatusChangedEvent notifies downstream consumers that an order moved
// through the lifecycle graph. Statuses are carried in their string form so
// consumers don't depend on the internal enum values.
type OrderStatusChangedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedAt   time.Time `json:"changed_at"`
}

// OrderEventPublisher publishes order lifecycle events to a message broker.
// Publishing is best effort: command handlers log failures but never fail the
// already-committed transition because of them.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
