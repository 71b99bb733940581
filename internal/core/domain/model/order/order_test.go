package order_test

import (
	"testing"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNewOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "TRK-1001", createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create order in pending status", func(t *testing.T) {
		id := kernel.NewUUID()
		clientID := kernel.NewUUID()

		o, err := order.NewOrder(id, clientID, "TRK-1001", createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.ClientID().IsEqual(clientID))
		assert.Equal(t, "TRK-1001", o.OrderNumber())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.SeverityNone, o.Severity())
		assert.Equal(t, createdAt, o.LastUpdateAt())
		assert.Nil(t, o.DepartureAt())
		assert.Nil(t, o.ArrivalAt())
		assert.False(t, o.IsDeleted())
	})

	t.Run("should reject zero order ID", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), "TRK-1001", createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero client ID", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.UUID{}, "TRK-1001", createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty order number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderNumberIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	lastUpdate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	departure := lastUpdate.Add(-2 * time.Hour)

	t.Run("should restore full aggregate state", func(t *testing.T) {
		id := kernel.NewUUID()
		clientID := kernel.NewUUID()
		vehicleID := kernel.NewUUID()

		o, err := order.RestoreOrder(
			id, clientID, "TRK-2002",
			&vehicleID, nil,
			"warehouse to port", "fragile cargo",
			order.StatusInTransit, order.SeverityYellow,
			lastUpdate, &departure, nil,
			false,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusInTransit, o.Status())
		assert.Equal(t, order.SeverityYellow, o.Severity())
		assert.Equal(t, "warehouse to port", o.RouteDescription())
		assert.Equal(t, "fragile cargo", o.Notes())
		require.NotNil(t, o.VehicleID())
		assert.True(t, o.VehicleID().IsEqual(vehicleID))
		assert.Nil(t, o.EscortID())
		assert.Equal(t, lastUpdate, o.LastUpdateAt())
		require.NotNil(t, o.DepartureAt())
		assert.Equal(t, departure, *o.DepartureAt())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "TRK-2002",
			nil, nil, "", "",
			order.Status(99), order.SeverityNone,
			lastUpdate, nil, nil,
			false,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject invalid severity", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "TRK-2002",
			nil, nil, "", "",
			order.StatusInTransit, order.Severity(99),
			lastUpdate, nil, nil,
			false,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should apply allowed transition and refresh heartbeat", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		at := createdAt.Add(30 * time.Minute)

		err := o.ChangeStatus(order.StatusInTransit, at)

		require.NoError(t, err)
		assert.Equal(t, order.StatusInTransit, o.Status())
		assert.Equal(t, at, o.LastUpdateAt())
	})

	t.Run("should record departure on first transition into transit", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		departedAt := createdAt.Add(time.Hour)

		require.NoError(t, o.ChangeStatus(order.StatusInTransit, departedAt))

		require.NotNil(t, o.DepartureAt())
		assert.Equal(t, departedAt, *o.DepartureAt())
	})

	t.Run("should not overwrite departure on later transit re-entry", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		departedAt := createdAt.Add(time.Hour)

		require.NoError(t, o.ChangeStatus(order.StatusInTransit, departedAt))
		require.NoError(t, o.ChangeStatus(order.StatusAtCheckpoint, departedAt.Add(time.Hour)))
		require.NoError(t, o.ChangeStatus(order.StatusInTransit, departedAt.Add(2*time.Hour)))

		require.NotNil(t, o.DepartureAt())
		assert.Equal(t, departedAt, *o.DepartureAt())
	})

	t.Run("should record arrival on delivery", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		arrivedAt := createdAt.Add(5 * time.Hour)

		require.NoError(t, o.ChangeStatus(order.StatusInTransit, createdAt.Add(time.Hour)))
		require.NoError(t, o.ChangeStatus(order.StatusDelivered, arrivedAt))

		require.NotNil(t, o.ArrivalAt())
		assert.Equal(t, arrivedAt, *o.ArrivalAt())
		assert.Equal(t, arrivedAt, o.LastUpdateAt())
	})

	t.Run("should reject forbidden transition and keep state", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)

		err := o.ChangeStatus(order.StatusDelivered, createdAt.Add(time.Hour))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, createdAt, o.LastUpdateAt())
		assert.Nil(t, o.ArrivalAt())
	})

	t.Run("should reject any transition out of a terminal status", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		require.NoError(t, o.ChangeStatus(order.StatusCancelled, createdAt.Add(time.Minute)))

		err := o.ChangeStatus(order.StatusInTransit, createdAt.Add(2*time.Minute))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("should reject self transition", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		require.NoError(t, o.ChangeStatus(order.StatusInTransit, createdAt.Add(time.Minute)))

		err := o.ChangeStatus(order.StatusInTransit, createdAt.Add(2*time.Minute))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_ApplyChanges(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should apply non-nil fields and refresh heartbeat", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		vehicleID := kernel.NewUUID()
		route := "northern corridor"
		at := createdAt.Add(time.Hour)

		err := o.ApplyChanges(order.OrderChanges{
			VehicleID:        &vehicleID,
			RouteDescription: &route,
		}, at)

		require.NoError(t, err)
		require.NotNil(t, o.VehicleID())
		assert.True(t, o.VehicleID().IsEqual(vehicleID))
		assert.Equal(t, "northern corridor", o.RouteDescription())
		assert.Equal(t, at, o.LastUpdateAt())
	})

	t.Run("should leave nil fields untouched", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		notes := "handle with care"
		require.NoError(t, o.ApplyChanges(order.OrderChanges{Notes: &notes}, createdAt.Add(time.Minute)))

		err := o.ApplyChanges(order.OrderChanges{}, createdAt.Add(2*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, "handle with care", o.Notes())
	})

	t.Run("should reject changes on delivered order", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		require.NoError(t, o.ChangeStatus(order.StatusInTransit, createdAt.Add(time.Minute)))
		require.NoError(t, o.ChangeStatus(order.StatusDelivered, createdAt.Add(time.Hour)))
		notes := "too late"

		err := o.ApplyChanges(order.OrderChanges{Notes: &notes}, createdAt.Add(2*time.Hour))

		require.ErrorIs(t, err, order.ErrOrderIsLocked)
		assert.Empty(t, o.Notes())
	})

	t.Run("should reject changes on cancelled order", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		require.NoError(t, o.ChangeStatus(order.StatusCancelled, createdAt.Add(time.Minute)))
		notes := "too late"

		err := o.ApplyChanges(order.OrderChanges{Notes: &notes}, createdAt.Add(time.Hour))

		require.ErrorIs(t, err, order.ErrOrderIsLocked)
	})

	t.Run("should reject zero value vehicle ID", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		var zeroID kernel.UUID

		err := o.ApplyChanges(order.OrderChanges{VehicleID: &zeroID}, createdAt.Add(time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Touch(t *testing.T) {
	t.Run("should refresh heartbeat without changing status", func(t *testing.T) {
		createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		o := mustNewOrder(t, createdAt)
		require.NoError(t, o.ChangeStatus(order.StatusInTransit, createdAt.Add(time.Minute)))
		touchedAt := createdAt.Add(time.Hour)

		o.Touch(touchedAt)

		assert.Equal(t, touchedAt, o.LastUpdateAt())
		assert.Equal(t, order.StatusInTransit, o.Status())
	})
}

func TestOrder_ApplySeverity(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should record severity without touching heartbeat", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)
		require.NoError(t, o.ChangeStatus(order.StatusInTransit, createdAt.Add(time.Minute)))
		heartbeat := o.LastUpdateAt()

		err := o.ApplySeverity(order.SeverityYellow)

		require.NoError(t, err)
		assert.Equal(t, order.SeverityYellow, o.Severity())
		assert.Equal(t, heartbeat, o.LastUpdateAt())
	})

	t.Run("should reject invalid severity", func(t *testing.T) {
		o := mustNewOrder(t, createdAt)

		err := o.ApplySeverity(order.Severity(99))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.SeverityNone, o.Severity())
	})
}

func TestOrder_MarkDeleted(t *testing.T) {
	t.Run("should soft delete the order", func(t *testing.T) {
		o := mustNewOrder(t, time.Now().UTC())

		o.MarkDeleted()

		assert.True(t, o.IsDeleted())
	})
}

func TestOrder_IsOwnedBy(t *testing.T) {
	t.Run("should match owning client only", func(t *testing.T) {
		clientID := kernel.NewUUID()
		o, err := order.NewOrder(kernel.NewUUID(), clientID, "TRK-3003", time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, o.IsOwnedBy(clientID))
		assert.False(t, o.IsOwnedBy(kernel.NewUUID()))
	})
}
