// Package checkpointrepo provides data transfer objects and mapping functions
// for checkpoint report persistence.
package checkpointrepo

import (
	"time"

	"tracking/internal/core/domain/model/checkpoint"
	"tracking/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CheckpointDTO represents the database structure for persisting checkpoint reports.
// Coordinates are nullable because a report may carry only a location name.
type CheckpointDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	LocationName string
	Sequence     int
	Notes        string
	Latitude     *float64
	Longitude    *float64
	ReportedAt   time.Time
	ReportedBy   string
	IsDeleted    bool
}

// TableName specifies the database table name for checkpoint entities.
func (CheckpointDTO) TableName() string {
	return "checkpoints"
}

// fromDomain converts a checkpoint domain aggregate to its database representation.
func fromDomain(aggregate *checkpoint.Checkpoint) CheckpointDTO {
	var latitude, longitude *float64
	if point := aggregate.Point(); point != nil {
		lat := point.Latitude()
		lon := point.Longitude()
		latitude = &lat
		longitude = &lon
	}

	return CheckpointDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		LocationName: aggregate.LocationName(),
		Sequence:     aggregate.Sequence(),
		Notes:        aggregate.Notes(),
		Latitude:     latitude,
		Longitude:    longitude,
		ReportedAt:   aggregate.ReportedAt(),
		ReportedBy:   aggregate.ReportedBy(),
		IsDeleted:    aggregate.IsDeleted(),
	}
}

// toDomain converts a database DTO to a checkpoint domain aggregate using RestoreCheckpoint.
func toDomain(dto CheckpointDTO) (*checkpoint.Checkpoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var point *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		point = &p
	}

	return checkpoint.RestoreCheckpoint(
		id,
		orderID,
		dto.LocationName,
		dto.Sequence,
		dto.Notes,
		point,
		dto.ReportedAt,
		dto.ReportedBy,
		dto.IsDeleted,
	)
}
