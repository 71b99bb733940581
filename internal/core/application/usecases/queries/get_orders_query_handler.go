package queries

import (
	"context"
	"database/sql"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders from the database with pagination.
// Soft-deleted orders are always excluded.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing. The actor's tenant scope and the optional
// status filter are translated into WHERE clauses; rows are ordered by the
// heartbeat, most recently updated first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			client_id,
			order_number,
			status,
			severity_level,
			last_update_at
		FROM orders
		WHERE is_deleted = false
	`
	args := make([]interface{}, 0, 4)

	if scope := query.Actor().TenantScope(); scope != nil {
		sqlQuery += " AND client_id = ?"
		args = append(args, scope.Bytes())
	}
	if query.Status() != nil {
		sqlQuery += " AND status = ?"
		args = append(args, int(*query.Status()))
	}

	sqlQuery += " ORDER BY last_update_at DESC LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), (query.Page()-1)*query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id, clientID uuid.UUID
		var status int
		var severity sql.NullString

		if err = rows.Scan(
			&id,
			&clientID,
			&resp.OrderNumber,
			&status,
			&severity,
			&resp.LastUpdateAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		ownerID, idErr := kernel.UUIDFromBytes(clientID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ClientID = ownerID

		resp.Status = order.Status(status)

		sev, sevErr := order.SeverityFromString(severity.String)
		if sevErr != nil {
			return nil, sevErr
		}
		resp.Severity = sev

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
