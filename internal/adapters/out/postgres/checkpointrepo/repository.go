package checkpointrepo

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/checkpoint"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCheckpointRepository implements CheckpointRepository using GORM.
type GormCheckpointRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCheckpointRepository creates a new GORM checkpoint repository.
func NewGormCheckpointRepository(db *gorm.DB, tracker aggregateTracker) *GormCheckpointRepository {
	return &GormCheckpointRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new checkpoint report to the database.
func (r *GormCheckpointRepository) Add(ctx context.Context, aggregate *checkpoint.Checkpoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing checkpoint report to the database.
func (r *GormCheckpointRepository) Update(ctx context.Context, aggregate *checkpoint.Checkpoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CheckpointDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a checkpoint by ID.
func (r *GormCheckpointRepository) Get(ctx context.Context, id kernel.UUID) (*checkpoint.Checkpoint, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CheckpointDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("checkpoint", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves the non-deleted checkpoints of an order,
// ordered by sequence then report time.
func (r *GormCheckpointRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*checkpoint.Checkpoint, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CheckpointDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND is_deleted = false", orderID.Bytes()).
		Order("sequence ASC, reported_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	checkpoints := make([]*checkpoint.Checkpoint, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		checkpoints = append(checkpoints, c)
	}

	return checkpoints, nil
}
