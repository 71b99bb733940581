package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrGetOrderCheckpointsQueryIsNotConstructed = errors.New(
		"GetOrderCheckpointsQuery must be created via NewGetOrderCheckpointsQuery constructor",
	)
)

// GetOrderCheckpointsQuery retrieves the checkpoint reports of one order,
// ordered by sequence number and report time. Uses view scoping: supervisors
// and operators may inspect any order's reports.
type GetOrderCheckpointsQuery struct {
	orderID kernel.UUID
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderCheckpointsQuery creates a query for an order's checkpoint history.
func NewGetOrderCheckpointsQuery(orderID kernel.UUID, requestedBy actor.Actor) (GetOrderCheckpointsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderCheckpointsQuery{}, err
	}
	if err := requestedBy.Validate(); err != nil {
		return GetOrderCheckpointsQuery{}, err
	}

	return GetOrderCheckpointsQuery{
		orderID: orderID,
		actor:   requestedBy,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderCheckpointsQueryIsNotConstructed if validation fails.
func (q GetOrderCheckpointsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderCheckpointsQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose reports are requested.
func (q GetOrderCheckpointsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the requesting actor.
func (q GetOrderCheckpointsQuery) Actor() actor.Actor {
	return q.actor
}

// GetOrderCheckpointsQueryResponse is one checkpoint report row.
// Latitude/Longitude are nil when the report carried no coordinates.
type GetOrderCheckpointsQueryResponse struct {
	ID           kernel.UUID
	LocationName string
	Sequence     int
	Notes        string
	Latitude     *float64
	Longitude    *float64
	ReportedAt   time.Time
	ReportedBy   string
}
