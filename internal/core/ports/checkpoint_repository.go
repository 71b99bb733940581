package ports

import (
	"context"

	"tracking/internal/core/domain/model/checkpoint"
	"tracking/internal/core/domain/model/kernel"
)

// CheckpointRepository defines the persistence contract for checkpoint reports.
type CheckpointRepository interface {
	// Add persists a new checkpoint report.
	Add(ctx context.Context, aggregate *checkpoint.Checkpoint) error

	// Update persists changes to an existing checkpoint report.
	Update(ctx context.Context, aggregate *checkpoint.Checkpoint) error

	// Get retrieves a checkpoint by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*checkpoint.Checkpoint, error)

	// GetAllByOrder retrieves the non-deleted checkpoints of an order,
	// ordered by sequence then report time.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*checkpoint.Checkpoint, error)
}
