package queries

import (
	"context"
	"database/sql"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderCheckpointsQueryHandler reads an order's checkpoint history.
// Verifies the order exists and that the actor may view it before listing.
type GetOrderCheckpointsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderCheckpointsQueryHandler creates a handler for checkpoint listings.
func NewGetOrderCheckpointsQueryHandler(db *gorm.DB) GetOrderCheckpointsQueryHandler {
	return GetOrderCheckpointsQueryHandler{db: db}
}

// Handle returns the non-deleted checkpoints of the order, ordered by
// sequence then report time. Missing or soft-deleted orders yield an
// ObjectNotFoundError; tenant mismatch yields an AccessDeniedError.
func (h GetOrderCheckpointsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderCheckpointsQuery,
) ([]GetOrderCheckpointsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var clientID uuid.UUID
	err := h.db.WithContext(ctx).Raw(`
		SELECT client_id
		FROM orders
		WHERE id = ? AND is_deleted = false
	`, query.OrderID().Bytes()).Row().Scan(&clientID)
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(clientID[:])
	if err != nil {
		return nil, err
	}
	if !query.Actor().CanView(ownerID) {
		return nil, errs.NewAccessDeniedError("order", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			location_name,
			sequence,
			notes,
			latitude,
			longitude,
			reported_at,
			reported_by
		FROM checkpoints
		WHERE order_id = ? AND is_deleted = false
		ORDER BY sequence ASC, reported_at ASC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkpoints := make([]GetOrderCheckpointsQueryResponse, 0)
	for rows.Next() {
		var resp GetOrderCheckpointsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&resp.LocationName,
			&resp.Sequence,
			&resp.Notes,
			&resp.Latitude,
			&resp.Longitude,
			&resp.ReportedAt,
			&resp.ReportedBy,
		); err != nil {
			return nil, err
		}

		checkpointID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = checkpointID

		checkpoints = append(checkpoints, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return checkpoints, nil
}
