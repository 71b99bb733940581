package commands_test

import (
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	route := "M-4 southbound, exit 12"
	changes := order.OrderChanges{
		VehicleID:        &vehicleID,
		RouteDescription: &route,
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, changes, adminActor(t))
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, changes, cmd.Changes())
}

func TestNewUpdateOrderCommand_EmptyChangesAllowed(t *testing.T) {
	cmd, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), order.OrderChanges{}, adminActor(t))
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}

func TestNewUpdateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewUpdateOrderCommand(kernel.UUID{}, order.OrderChanges{}, adminActor(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewUpdateOrderCommand_UnconstructedActor(t *testing.T) {
	_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), order.OrderChanges{}, actor.Actor{})
	require.Error(t, err)
	assert.ErrorIs(t, err, actor.ErrActorIsNotConstructed)
}

func TestUpdateOrderCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.UpdateOrderCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrUpdateOrderCommandIsNotConstructed)
}
