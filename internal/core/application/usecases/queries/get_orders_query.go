// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read directly from the database with raw SQL, bypassing the
// domain aggregates, and return flat response structs.
package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
	ErrPageIsInvalid  = errors.New("page must be greater than 0")
	ErrLimitIsInvalid = errors.New("limit must be between 1 and 100")
)

// OrdersFilter narrows the order listing. A nil Status means all statuses.
// Page/Limit of 0 fall back to the defaults (page 1, 20 rows).
type OrdersFilter struct {
	Status *order.Status
	Page   int
	Limit  int
}

// GetOrdersQuery retrieves a page of orders visible to the actor.
// Non-admin actors bound to a client only ever see their own client's orders;
// the tenant restriction is applied server-side, not trusted from the filter.
type GetOrdersQuery struct {
	actor  actor.Actor
	status *order.Status
	page   int
	limit  int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for a tenant-scoped order listing.
func NewGetOrdersQuery(requestedBy actor.Actor, filter OrdersFilter) (GetOrdersQuery, error) {
	if err := requestedBy.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return GetOrdersQuery{}, ErrPageIsInvalid
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 1 || limit > 100 {
		return GetOrdersQuery{}, ErrLimitIsInvalid
	}

	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		actor:  requestedBy,
		status: filter.Status,
		page:   page,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Actor returns the requesting actor.
func (q GetOrdersQuery) Actor() actor.Actor {
	return q.actor
}

// Status returns the status filter, or nil for all statuses.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// GetOrdersQueryResponse is one row of the order listing.
type GetOrdersQueryResponse struct {
	ID           kernel.UUID
	ClientID     kernel.UUID
	OrderNumber  string
	Status       order.Status
	Severity     order.Severity
	LastUpdateAt time.Time
}
