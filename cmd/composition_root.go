package cmd

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/blob"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/courierrepo"
	"marketplace/internal/adapters/out/postgres/notificationrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/transactionrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/application/access"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
)

// CompositionRoot wires adapters into the application layer. All handler
// factory methods hand out value types, so the root itself is cheap to copy.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	guard      access.Guard
	blobStore  ports.BlobStore
}

// NewCompositionRoot creates the composition root from the runtime config.
func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	blobStore, err := blob.NewBaseURLStore(configs.ProofBaseURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	// The guard resolves callers outside any unit of work, on the main
	// connection, so its repository discards aggregate tracking.
	guardUserRepo := userrepo.NewGormUserRepository(gormDB, discardTracker{})
	guard := access.NewGuard(httpin.NewContextCallerResolver(), guardUserRepo)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		guard:      guard,
		blobStore:  blobStore,
	}, nil
}

// discardTracker satisfies the repositories' tracker dependency where no
// unit of work collects aggregates.
type discardTracker struct{}

func (discardTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// MigrateDatabase creates or updates the schema for every persisted type.
func (c CompositionRoot) MigrateDatabase() error {
	return c.gormDB.AutoMigrate(
		&userrepo.UserDTO{},
		&courierrepo.ProfileDTO{},
		&orderrepo.OrderDTO{},
		&transactionrepo.TransactionDTO{},
		&notificationrepo.NotificationDTO{},
	)
}

func (c CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW { return c.uowFactory.Create() })
}

func (c CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW { return c.uowFactory.Create() })
}

func (c CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW { return c.uowFactory.Create() })
}

func (c CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW { return c.uowFactory.Create() })
}

func (c CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory())
}

func (c CompositionRoot) CreatePruneNotificationsCommandHandler(retention time.Duration) (commands.PruneNotificationsCommandHandler, error) {
	return commands.NewPruneNotificationsCommandHandler(c.notificationUoWFactory(), retention)
}

// CreateJobManager wires every scheduled job.
func (c CompositionRoot) CreateJobManager(retention time.Duration, logger *slog.Logger) (*jobs.JobManager, error) {
	pruneHandler, err := c.CreatePruneNotificationsCommandHandler(retention)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(pruneHandler, logger), nil
}

// HTTPHandlers bundles every handler the HTTP server routes to.
func (c CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:       commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.guard),
		AcceptOrder:       commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.guard),
		CancelOrder:       commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.guard),
		CompleteOrder:     commands.NewCompleteOrderCommandHandler(c.deliveryUoWFactory(), c.guard),
		UpdateOrderStatus: commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.guard),

		RequestDeposit: commands.NewRequestDepositCommandHandler(c.ledgerUoWFactory(), c.guard),
		ApproveDeposit: commands.NewApproveDepositCommandHandler(c.ledgerUoWFactory(), c.guard),
		RejectDeposit:  commands.NewRejectDepositCommandHandler(c.ledgerUoWFactory(), c.guard),

		MarkNotificationRead:     commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory(), c.guard),
		MarkAllNotificationsRead: commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoWFactory(), c.guard),

		ChangeUserRole:       commands.NewChangeUserRoleCommandHandler(c.courierUoWFactory(), c.guard),
		UpdateCourierProfile: commands.NewUpdateCourierProfileCommandHandler(c.courierUoWFactory(), c.guard),

		GetOrderByID:           queries.NewGetOrderByIDQueryHandler(c.gormDB, c.guard),
		GetAvailableOrders:     queries.NewGetAvailableOrdersQueryHandler(c.gormDB, c.guard),
		GetUserOrders:          queries.NewGetUserOrdersQueryHandler(c.gormDB, c.guard),
		GetCourierOrders:       queries.NewGetCourierOrdersQueryHandler(c.gormDB, c.guard),
		GetAllOrders:           queries.NewGetAllOrdersQueryHandler(c.gormDB, c.guard),
		SearchOrders:           queries.NewSearchOrdersQueryHandler(c.gormDB, c.guard),
		GetUserTransactions:    queries.NewGetUserTransactionsQueryHandler(c.gormDB, c.guard),
		GetPendingTransactions: queries.NewGetPendingTransactionsQueryHandler(c.gormDB, c.guard, c.blobStore),
		GetUserNotifications:   queries.NewGetUserNotificationsQueryHandler(c.gormDB, c.guard),
	}
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
