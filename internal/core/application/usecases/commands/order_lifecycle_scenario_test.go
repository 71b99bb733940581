package commands_test

import (
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestOrderLifecycle_ActivateSweepDeliverReject drives one order through the
// full tracking flow: activation, a staleness sweep 45 minutes later that
// escalates it to yellow without touching the heartbeat, delivery, and a
// rejected attempt to put the delivered order back on the road.
func TestOrderLifecycle_ActivateSweepDeliverReject(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	tracked := pendingOrder(t, clientID)

	// Activate: Pending -> InTransit
	activateCmd, err := commands.NewActivateOrderCommand(tracked.ID(), adminActor(t))
	require.NoError(t, err)

	activateRepo := new(MockOrderRepository)
	activateUow := new(MockOrderUoW)
	mock.InOrder(
		activateUow.On("Begin", ctx).Return(nil).Once(),
		activateUow.On("OrderRepository").Return(activateRepo).Once(),
		activateRepo.On("Get", mock.Anything, tracked.ID()).Return(tracked, nil).Once(),
		activateRepo.On("UpdateStatusFrom", mock.Anything, tracked, order.StatusPending).Return(nil).Once(),
		activateUow.On("Commit", ctx).Return(nil).Once(),
		activateUow.On("Rollback", ctx).Return(nil).Once(),
	)
	activateFactory := new(MockOrderUoWFactory)
	activateFactory.On("Create").Return(activateUow).Once()

	statusHandler := commands.NewChangeOrderStatusCommandHandler(activateFactory, nil, testLogger())
	activated, err := statusHandler.Handle(ctx, activateCmd)
	require.NoError(t, err)
	require.Equal(t, order.StatusInTransit, activated.Status())
	require.NotNil(t, activated.DepartureAt())

	activatedAt := tracked.LastUpdateAt()

	// Sweep 45 minutes later: none -> yellow, heartbeat untouched
	observedAt := activatedAt.Add(45 * time.Minute)
	sweepCmd, err := commands.NewEscalateStaleOrdersCommand(observedAt)
	require.NoError(t, err)

	sweepRepo := new(MockOrderRepository)
	sweepUow := new(MockOrderUoW)
	mock.InOrder(
		sweepUow.On("Begin", ctx).Return(nil).Once(),
		sweepUow.On("OrderRepository").Return(sweepRepo).Once(),
		sweepRepo.On("GetAllActiveInTransit", mock.Anything).Return([]*order.Order{tracked}, nil).Once(),
		sweepRepo.On("BatchUpdateSeverity", mock.Anything, mock.MatchedBy(func(updates []ports.SeverityUpdate) bool {
			return len(updates) == 1 &&
				updates[0].ID.IsEqual(tracked.ID()) &&
				updates[0].Severity == order.SeverityYellow
		})).Return(int64(1), nil).Once(),
		sweepUow.On("Commit", ctx).Return(nil).Once(),
		sweepUow.On("Rollback", ctx).Return(nil).Once(),
	)
	sweepFactory := new(MockOrderUoWFactory)
	sweepFactory.On("Create").Return(sweepUow).Once()

	sweepHandler := commands.NewEscalateStaleOrdersCommandHandler(sweepFactory, services.NewStalenessClassifier(), testLogger())
	require.NoError(t, sweepHandler.Handle(ctx, sweepCmd))
	sweepRepo.AssertExpectations(t)
	// elapsed time keeps accumulating: classification must not reset the clock
	assert.True(t, tracked.LastUpdateAt().Equal(activatedAt))

	// Deliver: InTransit -> Delivered
	deliverCmd, err := commands.NewFinalizeOrderCommand(tracked.ID(), adminActor(t))
	require.NoError(t, err)

	deliverRepo := new(MockOrderRepository)
	deliverUow := new(MockOrderUoW)
	mock.InOrder(
		deliverUow.On("Begin", ctx).Return(nil).Once(),
		deliverUow.On("OrderRepository").Return(deliverRepo).Once(),
		deliverRepo.On("Get", mock.Anything, tracked.ID()).Return(tracked, nil).Once(),
		deliverRepo.On("UpdateStatusFrom", mock.Anything, tracked, order.StatusInTransit).Return(nil).Once(),
		deliverUow.On("Commit", ctx).Return(nil).Once(),
		deliverUow.On("Rollback", ctx).Return(nil).Once(),
	)
	deliverFactory := new(MockOrderUoWFactory)
	deliverFactory.On("Create").Return(deliverUow).Once()

	deliverHandler := commands.NewChangeOrderStatusCommandHandler(deliverFactory, nil, testLogger())
	delivered, err := deliverHandler.Handle(ctx, deliverCmd)
	require.NoError(t, err)
	require.Equal(t, order.StatusDelivered, delivered.Status())
	require.NotNil(t, delivered.ArrivalAt())

	// Delivered is terminal: putting the order back in transit must fail
	reactivateCmd, err := commands.NewActivateOrderCommand(tracked.ID(), adminActor(t))
	require.NoError(t, err)

	rejectRepo := new(MockOrderRepository)
	rejectUow := new(MockOrderUoW)
	mock.InOrder(
		rejectUow.On("Begin", ctx).Return(nil).Once(),
		rejectUow.On("OrderRepository").Return(rejectRepo).Once(),
		rejectRepo.On("Get", mock.Anything, tracked.ID()).Return(tracked, nil).Once(),
		rejectUow.On("Rollback", ctx).Return(nil).Once(),
	)
	rejectFactory := new(MockOrderUoWFactory)
	rejectFactory.On("Create").Return(rejectUow).Once()

	rejectHandler := commands.NewChangeOrderStatusCommandHandler(rejectFactory, nil, testLogger())
	_, err = rejectHandler.Handle(ctx, reactivateCmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	rejectRepo.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything)
	rejectUow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Equal(t, order.StatusDelivered, tracked.Status())
}
