package queries_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/adapters/out/postgres/checkpointrepo"
	"tracking/internal/adapters/out/postgres/orderrepo"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/checkpoint"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderCheckpointsQueryHandlerTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *gorm.DB
	handler        queries.GetOrderCheckpointsQueryHandler
	orderRepo      *orderrepo.GormOrderRepository
	checkpointRepo *checkpointrepo.GormCheckpointRepository
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &checkpointrepo.CheckpointDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderCheckpointsQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.checkpointRepo = checkpointrepo.NewGormCheckpointRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE checkpoints, orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TestHandle_MissingOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderCheckpointsQuery(kernel.NewUUID(), suite.operator())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(result)
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TestHandle_DeletedOrder_ReturnsNotFound() {
	tracked := suite.saveOrder(kernel.NewUUID(), "ORD-DELETED")
	tracked.MarkDeleted()
	err := suite.orderRepo.Update(context.Background(), tracked)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderCheckpointsQuery(tracked.ID(), suite.operator())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TestHandle_ForeignClient_ReturnsAccessDenied() {
	tracked := suite.saveOrder(kernel.NewUUID(), "ORD-FOREIGN")

	foreignClient := kernel.NewUUID()
	requestedBy, err := actor.NewActor(kernel.NewUUID(), &foreignClient, actor.RoleClient)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderCheckpointsQuery(tracked.ID(), requestedBy)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TestHandle_OwnClient_SeesReports() {
	clientID := kernel.NewUUID()
	tracked := suite.saveOrder(clientID, "ORD-OWN")
	suite.saveCheckpoint(tracked.ID(), "Lisbon hub", 1, nil)

	requestedBy, err := actor.NewActor(kernel.NewUUID(), &clientID, actor.RoleClient)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderCheckpointsQuery(tracked.ID(), requestedBy)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TestHandle_NoReports_ReturnsEmptySlice() {
	tracked := suite.saveOrder(kernel.NewUUID(), "ORD-EMPTY")

	query, err := queries.NewGetOrderCheckpointsQuery(tracked.ID(), suite.operator())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TestHandle_ReportsOrderedBySequence() {
	tracked := suite.saveOrder(kernel.NewUUID(), "ORD-SEQ")

	point, err := kernel.NewGeoPoint(41.1579, -8.6291)
	suite.Require().NoError(err)

	third := suite.saveCheckpoint(tracked.ID(), "Porto depot", 3, &point)
	first := suite.saveCheckpoint(tracked.ID(), "Lisbon hub", 1, nil)
	second := suite.saveCheckpoint(tracked.ID(), "Coimbra stop", 2, nil)

	query, err := queries.NewGetOrderCheckpointsQuery(tracked.ID(), suite.operator())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.True(result[0].ID.IsEqual(first.ID()))
	suite.True(result[1].ID.IsEqual(second.ID()))
	suite.True(result[2].ID.IsEqual(third.ID()))

	suite.Nil(result[0].Latitude)
	suite.Nil(result[0].Longitude)
	suite.Require().NotNil(result[2].Latitude)
	suite.Require().NotNil(result[2].Longitude)
	suite.InDelta(41.1579, *result[2].Latitude, 0.000001)
	suite.InDelta(-8.6291, *result[2].Longitude, 0.000001)
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TestHandle_ExcludesDeletedReports() {
	tracked := suite.saveOrder(kernel.NewUUID(), "ORD-REPORTS")

	kept := suite.saveCheckpoint(tracked.ID(), "Lisbon hub", 1, nil)
	removed := suite.saveCheckpoint(tracked.ID(), "wrong entry", 2, nil)
	removed.MarkDeleted()
	err := suite.checkpointRepo.Update(context.Background(), removed)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderCheckpointsQuery(tracked.ID(), suite.operator())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(kept.ID()))
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderCheckpointsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOrderCheckpointsQuery constructor")
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) operator() actor.Actor {
	a, err := actor.NewActor(kernel.NewUUID(), nil, actor.RoleOperator)
	suite.Require().NoError(err)
	return a
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) saveOrder(clientID kernel.UUID, orderNumber string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), clientID, orderNumber, time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)
	return o
}

func (suite *GetOrderCheckpointsQueryHandlerTestSuite) saveCheckpoint(
	orderID kernel.UUID,
	locationName string,
	sequence int,
	point *kernel.GeoPoint,
) *checkpoint.Checkpoint {
	c, err := checkpoint.NewCheckpoint(
		kernel.NewUUID(), orderID, locationName, sequence, "", point, time.Now().UTC(), "operator-7",
	)
	suite.Require().NoError(err)
	err = suite.checkpointRepo.Add(context.Background(), c)
	suite.Require().NoError(err)
	return c
}

func TestGetOrderCheckpointsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderCheckpointsQueryHandlerTestSuite))
}
