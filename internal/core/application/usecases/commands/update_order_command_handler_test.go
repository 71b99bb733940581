package commands_test

import (
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	tracked := pendingOrder(t, clientID)
	before := tracked.LastUpdateAt()

	vehicleID := kernel.NewUUID()
	notes := "fragile cargo"
	cmd, err := commands.NewUpdateOrderCommand(tracked.ID(), order.OrderChanges{
		VehicleID: &vehicleID,
		Notes:     &notes,
	}, adminActor(t))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, tracked.ID()).Return(tracked, nil).Once(),
		repo.On("UpdateStatusFrom", mock.Anything, tracked, order.StatusPending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, updated.VehicleID())
	assert.True(t, updated.VehicleID().IsEqual(vehicleID))
	assert.Equal(t, "fragile cargo", updated.Notes())
	assert.True(t, updated.LastUpdateAt().After(before) || updated.LastUpdateAt().Equal(before))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_TerminalOrderIsLocked(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	tracked := inTransitOrder(t, clientID)
	require.NoError(t, tracked.ChangeStatus(order.StatusDelivered, time.Now().UTC()))

	notes := "late edit"
	cmd, err := commands.NewUpdateOrderCommand(tracked.ID(), order.OrderChanges{Notes: &notes}, adminActor(t))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, tracked.ID()).Return(tracked, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIsLocked)
	repo.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_ConcurrentTransitionLost(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	tracked := pendingOrder(t, clientID)

	notes := "stale edit"
	cmd, err := commands.NewUpdateOrderCommand(tracked.ID(), order.OrderChanges{Notes: &notes}, adminActor(t))
	require.NoError(t, err)

	// The order was activated concurrently after this handler read it as
	// pending. The conditional full-row write must fail instead of
	// reverting the committed status.
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, tracked.ID()).Return(tracked, nil).Once(),
		repo.On("UpdateStatusFrom", mock.Anything, tracked, order.StatusPending).
			Return(ports.ErrOrderStateChanged).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrOrderStateChanged)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_ForeignTenantDenied(t *testing.T) {
	ctx := t.Context()
	tracked := pendingOrder(t, kernel.NewUUID())

	notes := "edit"
	cmd, err := commands.NewUpdateOrderCommand(tracked.ID(), order.OrderChanges{Notes: &notes}, clientActor(t, kernel.NewUUID()))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, tracked.ID()).Return(tracked, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAccessDenied)
	assert.Equal(t, "", tracked.Notes())
}

func TestUpdateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
