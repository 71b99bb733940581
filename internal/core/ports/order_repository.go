package ports

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// ErrOrderStateChanged is returned by conditional status updates when the
// stored status no longer matches the expected one, i.e. a concurrent
// transition won the race. At most one transition applies per race.
var ErrOrderStateChanged = errors.New("order status was changed concurrently")

// SeverityUpdate pairs an order with its newly classified severity level.
// Used by the escalation sweep to batch-persist changed classifications.
type SeverityUpdate struct {
	ID       kernel.UUID
	Severity order.Severity
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateStatusFrom persists the aggregate only if the stored status still
	// equals expected, guarding the read-validate-write cycle against
	// concurrent transitions. Returns ErrOrderStateChanged when the
	// conditional write matches no row.
	UpdateStatusFrom(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves a non-deleted order by its unique identifier.
	// Soft-deleted and missing orders both yield an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order by its business order number,
	// including soft-deleted rows (used for uniqueness checks).
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetAllActiveInTransit retrieves all non-deleted orders in InTransit
	// status. This is the escalation sweep's scan scope.
	GetAllActiveInTransit(ctx context.Context) ([]*order.Order, error)

	// BatchUpdateSeverity persists recomputed severity levels in bulk and
	// returns the number of affected rows. Implementations must not modify
	// the last-update heartbeat: severity recomputation is observational.
	BatchUpdateSeverity(ctx context.Context, updates []SeverityUpdate) (int64, error)
}
