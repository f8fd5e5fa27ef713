package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()

	pickupLoc, err := kernel.NewLocation(52.52, 13.405)
	suite.Require().NoError(err)
	deliveryLoc, err := kernel.NewLocation(52.4, 13.1)
	suite.Require().NoError(err)

	amount := 42.5
	id := kernel.NewUUID()
	original, err := order.NewOrder(
		id,
		order.NewOrderNumber(time.Now().UTC()),
		kernel.NewUUID(),
		"espresso beans",
		"Alexanderplatz 1",
		"Potsdamer Platz 9",
		&pickupLoc,
		&deliveryLoc,
		&amount,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", id, original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.OrderNumber(), retrieved.OrderNumber())
	suite.Equal(original.UserID(), retrieved.UserID())
	suite.Equal("espresso beans", retrieved.Item())
	suite.Equal("Alexanderplatz 1", retrieved.PickupAddress())
	suite.Equal("Potsdamer Platz 9", retrieved.DeliveryAddress())
	suite.Require().NotNil(retrieved.PickupLocation())
	suite.InEpsilon(52.52, retrieved.PickupLocation().Latitude(), 1e-9)
	suite.InEpsilon(13.405, retrieved.PickupLocation().Longitude(), 1e-9)
	suite.InEpsilon(42.5, retrieved.TotalAmount(), 1e-9)
	suite.InEpsilon(order.DefaultDeliveryFee, retrieved.DeliveryFee(), 1e-9)
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.Nil(retrieved.CourierID())
	suite.Nil(retrieved.Rating())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateWithStatusGuard_StatusMatches_PersistsAcceptance() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	courierID := kernel.NewUUID()
	suite.Require().NoError(testOrder.Accept(courierID, time.Now().UTC()))

	err := suite.repository.UpdateWithStatusGuard(ctx, testOrder, order.StatusPending)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusInTransit, retrieved.Status())
	suite.Require().NotNil(retrieved.CourierID())
	suite.Equal(courierID, *retrieved.CourierID())
	suite.NotNil(retrieved.AcceptedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateWithStatusGuard_LostRace_ReturnsConflictError() {
	ctx := context.Background()

	// Two couriers load the same pending order.
	stored := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, stored))

	first, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)

	// The first courier wins the compare-and-set.
	suite.Require().NoError(first.Accept(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.UpdateWithStatusGuard(ctx, first, order.StatusPending))

	// The second courier's write must fail, leaving the first assignment intact.
	secondCourier := kernel.NewUUID()
	suite.Require().NoError(second.Accept(secondCourier, time.Now().UTC()))
	err = suite.repository.UpdateWithStatusGuard(ctx, second, order.StatusPending)

	suite.Require().Error(err)
	var conflictErr *errs.ConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	retrieved, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.CourierID())
	suite.NotEqual(secondCourier, *retrieved.CourierID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DeliveredOrder_PersistsRating() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Accept(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	suite.Require().NoError(testOrder.Deliver(5, time.Now().UTC()))
	suite.Require().NoError(suite.repository.UpdateWithStatusGuard(ctx, testOrder, order.StatusInTransit))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusDelivered, retrieved.Status())
	suite.Require().NotNil(retrieved.Rating())
	suite.Equal(5, *retrieved.Rating())
	suite.NotNil(retrieved.DeliveredAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createPendingOrder())
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

// createPendingOrder creates a pending order with default values.
func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrder() *order.Order {
	id := kernel.NewUUID()
	testOrder, err := order.NewOrder(
		id,
		order.NewOrderNumber(time.Now().UTC()),
		kernel.NewUUID(),
		"groceries",
		"Main St 1",
		"Oak Ave 2",
		nil,
		nil,
		nil,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
