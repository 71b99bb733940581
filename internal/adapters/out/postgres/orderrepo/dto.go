// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Severity is stored as a nullable lowercase string so that orders which have
// never been classified carry NULL rather than a default level.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID         uuid.UUID  `gorm:"type:uuid;index"`
	OrderNumber      string     `gorm:"uniqueIndex"`
	VehicleID        *uuid.UUID `gorm:"type:uuid"`
	EscortID         *uuid.UUID `gorm:"type:uuid"`
	RouteDescription string
	Notes            string
	Status           int        `gorm:"index"`
	SeverityLevel    *string    `gorm:"type:varchar(16)"`
	LastUpdateAt     time.Time
	DepartureAt      *time.Time
	ArrivalAt        *time.Time
	IsDeleted        bool
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// columns returns the full attribute set as an update map. Struct-based GORM
// updates skip zero values, which would prevent clearing nullable fields such
// as the severity level, so updates always go through this map.
func (d OrderDTO) columns() map[string]any {
	return map[string]any{
		"client_id":         d.ClientID,
		"order_number":      d.OrderNumber,
		"vehicle_id":        d.VehicleID,
		"escort_id":         d.EscortID,
		"route_description": d.RouteDescription,
		"notes":             d.Notes,
		"status":            d.Status,
		"severity_level":    d.SeverityLevel,
		"last_update_at":    d.LastUpdateAt,
		"departure_at":      d.DepartureAt,
		"arrival_at":        d.ArrivalAt,
		"is_deleted":        d.IsDeleted,
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var vehicleID, escortID *uuid.UUID
	if id := aggregate.VehicleID(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}
	if id := aggregate.EscortID(); id != nil {
		raw := id.Bytes()
		escortID = &raw
	}

	var severityLevel *string
	if aggregate.Severity() != order.SeverityNone {
		s := aggregate.Severity().String()
		severityLevel = &s
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		ClientID:         aggregate.ClientID().Bytes(),
		OrderNumber:      aggregate.OrderNumber(),
		VehicleID:        vehicleID,
		EscortID:         escortID,
		RouteDescription: aggregate.RouteDescription(),
		Notes:            aggregate.Notes(),
		Status:           int(aggregate.Status()),
		SeverityLevel:    severityLevel,
		LastUpdateAt:     aggregate.LastUpdateAt(),
		DepartureAt:      aggregate.DepartureAt(),
		ArrivalAt:        aggregate.ArrivalAt(),
		IsDeleted:        aggregate.IsDeleted(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vErr != nil {
			return nil, vErr
		}
		vehicleID = &vID
	}

	var escortID *kernel.UUID
	if dto.EscortID != nil {
		eID, eErr := kernel.UUIDFromBytes((*dto.EscortID)[:])
		if eErr != nil {
			return nil, eErr
		}
		escortID = &eID
	}

	severity := order.SeverityNone
	if dto.SeverityLevel != nil {
		severity, err = order.SeverityFromString(*dto.SeverityLevel)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		clientID,
		dto.OrderNumber,
		vehicleID,
		escortID,
		dto.RouteDescription,
		dto.Notes,
		order.Status(dto.Status),
		severity,
		dto.LastUpdateAt,
		dto.DepartureAt,
		dto.ArrivalAt,
		dto.IsDeleted,
	)
}
