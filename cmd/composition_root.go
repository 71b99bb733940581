package cmd

import (
	"log/slog"
	"time"

	"tracking/internal/adapters/out/postgres"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	classifier services.StalenessClassifier
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot wires the application graph. publisher may be nil when
// no Kafka broker is configured; status changes are then only persisted.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	classifier services.StalenessClassifier,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		classifier: classifier,
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddCheckpointCommandHandler() commands.AddCheckpointCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCheckpointCommandHandler(f)
}

func (c *CompositionRoot) CreateEscalateStaleOrdersCommandHandler() commands.EscalateStaleOrdersCommandHandler {
	return commands.NewEscalateStaleOrdersCommandHandler(c.orderUoWFactory(), c.classifier, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderCheckpointsQueryHandler() queries.GetOrderCheckpointsQueryHandler {
	return queries.NewGetOrderCheckpointsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	interval := time.Duration(c.configs.SweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Minute
	}
	return jobs.NewJobManager(c.CreateEscalateStaleOrdersCommandHandler(), interval, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
