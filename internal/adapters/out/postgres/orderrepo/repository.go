package orderrepo

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(dto.columns())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatusFrom saves the order only if the stored status still equals
// expected. A concurrent transition that already moved the order away makes
// the conditional update match no row, reported as ErrOrderStateChanged.
func (r *GormOrderRepository) UpdateStatusFrom(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(dto.columns())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrOrderStateChanged
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a non-deleted order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ? AND is_deleted = false", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderNumber retrieves an order by its business order number.
// Soft-deleted rows are included: the order number stays reserved after deletion.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActiveInTransit retrieves all non-deleted orders in InTransit status.
func (r *GormOrderRepository) GetAllActiveInTransit(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ? AND is_deleted = false", int(order.StatusInTransit)).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// BatchUpdateSeverity persists recomputed severity levels grouped by level.
// Only the severity_level column is touched: the last_update_at heartbeat must
// survive classification so that elapsed time keeps accumulating.
func (r *GormOrderRepository) BatchUpdateSeverity(ctx context.Context, updates []ports.SeverityUpdate) (int64, error) {
	grouped := make(map[order.Severity][]any)
	for _, update := range updates {
		grouped[update.Severity] = append(grouped[update.Severity], update.ID.Bytes())
	}

	var affected int64
	for severity, ids := range grouped {
		var level *string
		if severity != order.SeverityNone {
			s := severity.String()
			level = &s
		}

		result := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id IN ?", ids).
			UpdateColumn("severity_level", level)
		if result.Error != nil {
			return affected, result.Error
		}
		affected += result.RowsAffected
	}

	return affected, nil
}
