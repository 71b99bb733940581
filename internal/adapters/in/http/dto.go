package http

import (
	"time"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/checkpoint"
	"tracking/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Error is the uniform error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest registers a new shipment order. ClientId may be omitted
// by client-bound actors, whose own tenant is used instead.
type CreateOrderRequest struct {
	OrderNumber string `json:"order_number"`
	ClientId    string `json:"client_id,omitempty"`
}

// ChangeStatusRequest carries the requested lifecycle status by name.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderRequest carries free-form field changes. Absent fields are left
// unchanged.
type UpdateOrderRequest struct {
	VehicleId        *string `json:"vehicle_id,omitempty"`
	EscortId         *string `json:"escort_id,omitempty"`
	RouteDescription *string `json:"route_description,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// AddCheckpointRequest records a location report for an in-transit order.
// Latitude and Longitude are optional but must be supplied together.
type AddCheckpointRequest struct {
	LocationName string   `json:"location_name"`
	Sequence     int      `json:"sequence"`
	Notes        string   `json:"notes,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	ReportedBy   string   `json:"reported_by,omitempty"`
}

// Order is the full order representation returned by command endpoints.
type Order struct {
	Id               uuid.UUID  `json:"id"`
	ClientId         uuid.UUID  `json:"client_id"`
	OrderNumber      string     `json:"order_number"`
	VehicleId        *uuid.UUID `json:"vehicle_id,omitempty"`
	EscortId         *uuid.UUID `json:"escort_id,omitempty"`
	RouteDescription string     `json:"route_description,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Status           string     `json:"status"`
	Severity         string     `json:"severity"`
	LastUpdateAt     time.Time  `json:"last_update_at"`
	DepartureAt      *time.Time `json:"departure_at,omitempty"`
	ArrivalAt        *time.Time `json:"arrival_at,omitempty"`
}

// OrderSummary is the compact listing row returned by GET /orders.
type OrderSummary struct {
	Id           uuid.UUID `json:"id"`
	ClientId     uuid.UUID `json:"client_id"`
	OrderNumber  string    `json:"order_number"`
	Status       string    `json:"status"`
	Severity     string    `json:"severity"`
	LastUpdateAt time.Time `json:"last_update_at"`
}

// Checkpoint is a single location report of an order.
type Checkpoint struct {
	Id           uuid.UUID `json:"id"`
	LocationName string    `json:"location_name"`
	Sequence     int       `json:"sequence"`
	Notes        string    `json:"notes,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	ReportedAt   time.Time `json:"reported_at"`
	ReportedBy   string    `json:"reported_by,omitempty"`
}

func orderToResponse(aggregate *order.Order) Order {
	var vehicleID, escortID *uuid.UUID
	if id := aggregate.VehicleID(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}
	if id := aggregate.EscortID(); id != nil {
		raw := id.Bytes()
		escortID = &raw
	}

	return Order{
		Id:               aggregate.ID().Bytes(),
		ClientId:         aggregate.ClientID().Bytes(),
		OrderNumber:      aggregate.OrderNumber(),
		VehicleId:        vehicleID,
		EscortId:         escortID,
		RouteDescription: aggregate.RouteDescription(),
		Notes:            aggregate.Notes(),
		Status:           aggregate.Status().String(),
		Severity:         aggregate.Severity().String(),
		LastUpdateAt:     aggregate.LastUpdateAt(),
		DepartureAt:      aggregate.DepartureAt(),
		ArrivalAt:        aggregate.ArrivalAt(),
	}
}

func orderSummaryToResponse(row queries.GetOrdersQueryResponse) OrderSummary {
	return OrderSummary{
		Id:           row.ID.Bytes(),
		ClientId:     row.ClientID.Bytes(),
		OrderNumber:  row.OrderNumber,
		Status:       row.Status.String(),
		Severity:     row.Severity.String(),
		LastUpdateAt: row.LastUpdateAt,
	}
}

func checkpointToResponse(aggregate *checkpoint.Checkpoint) Checkpoint {
	var latitude, longitude *float64
	if point := aggregate.Point(); point != nil {
		lat := point.Latitude()
		lon := point.Longitude()
		latitude = &lat
		longitude = &lon
	}

	return Checkpoint{
		Id:           aggregate.ID().Bytes(),
		LocationName: aggregate.LocationName(),
		Sequence:     aggregate.Sequence(),
		Notes:        aggregate.Notes(),
		Latitude:     latitude,
		Longitude:    longitude,
		ReportedAt:   aggregate.ReportedAt(),
		ReportedBy:   aggregate.ReportedBy(),
	}
}

func checkpointRowToResponse(row queries.GetOrderCheckpointsQueryResponse) Checkpoint {
	return Checkpoint{
		Id:           row.ID.Bytes(),
		LocationName: row.LocationName,
		Sequence:     row.Sequence,
		Notes:        row.Notes,
		Latitude:     row.Latitude,
		Longitude:    row.Longitude,
		ReportedAt:   row.ReportedAt,
		ReportedBy:   row.ReportedBy,
	}
}
