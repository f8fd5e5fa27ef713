package notificationrepo_test

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

	"marketplace/internal/adapters/out/postgres/notificationrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// NotificationRepositoryIntegrationTestSuite provides integration tests for
// NotificationRepository using PostgreSQL containers.
type NotificationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *notificationrepo.GormNotificationRepository
	tracker    *MockAggregateTracker
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&notificationrepo.NotificationDTO{}))
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE notifications").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Maybe()
	suite.repository = notificationrepo.NewGormNotificationRepository(suite.db, suite.tracker)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsTypedPayloads() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	recipientID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	transactionID := kernel.NewUUID()

	testCases := []struct {
		name    string
		notType notification.Type
		payload notification.Payload
	}{
		{
			name:    "order payload",
			notType: notification.TypeOrderCreated,
			payload: notification.OrderPayload{OrderID: orderID},
		},
		{
			name:    "assignment payload",
			notType: notification.TypeOrderAccepted,
			payload: notification.AssignmentPayload{OrderID: orderID, CourierID: courierID},
		},
		{
			name:    "rating payload",
			notType: notification.TypeCourierRated,
			payload: notification.RatingPayload{OrderID: orderID, Rating: 4},
		},
		{
			name:    "deposit payload",
			notType: notification.TypeDepositApproved,
			payload: notification.DepositPayload{TransactionID: transactionID, Amount: 99.5},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			id := kernel.NewUUID()
			original, err := notification.NewNotification(
				id, recipientID, tc.notType, "Title", "Message", tc.payload, now)
			suite.Require().NoError(err)

			suite.Require().NoError(suite.repository.Add(ctx, original))

			retrieved, err := suite.repository.Get(ctx, id)
			suite.Require().NoError(err)
			suite.Equal(tc.notType, retrieved.Type())
			suite.Equal(tc.payload, retrieved.Payload())
			suite.False(retrieved.IsRead())
		})
	}
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestUpdate_MarkRead_PersistsOnlyReadFlag() {
	ctx := context.Background()

	entity := suite.addNotification(kernel.NewUUID(), kernel.NewUUID(), false, time.Now().UTC())

	entity.MarkRead()
	suite.Require().NoError(suite.repository.Update(ctx, entity))

	retrieved, err := suite.repository.Get(ctx, entity.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsRead())
	suite.Equal(entity.Title(), retrieved.Title())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkAllRead_MarksOnlyCallersUnread() {
	ctx := context.Background()
	now := time.Now().UTC()
	userID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	suite.addNotification(userID, kernel.NewUUID(), false, now)
	suite.addNotification(userID, kernel.NewUUID(), false, now)
	suite.addNotification(userID, kernel.NewUUID(), true, now)
	other := suite.addNotification(otherID, kernel.NewUUID(), false, now)

	affected, err := suite.repository.MarkAllRead(ctx, userID, 100)
	suite.Require().NoError(err)
	suite.Equal(int64(2), affected)

	// The other user's feed is untouched.
	retrieved, err := suite.repository.Get(ctx, other.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsRead())

	// Repeating the sweep finds nothing unread.
	affected, err = suite.repository.MarkAllRead(ctx, userID, 100)
	suite.Require().NoError(err)
	suite.Zero(affected)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkAllRead_RespectsBatchLimit() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	for range 5 {
		suite.addNotification(userID, kernel.NewUUID(), false, time.Now().UTC())
	}

	affected, err := suite.repository.MarkAllRead(ctx, userID, 3)
	suite.Require().NoError(err)
	suite.Equal(int64(3), affected)

	affected, err = suite.repository.MarkAllRead(ctx, userID, 3)
	suite.Require().NoError(err)
	suite.Equal(int64(2), affected)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestDeleteByOrder_RemovesAllOrderNotifications() {
	ctx := context.Background()
	now := time.Now().UTC()
	orderID := kernel.NewUUID()
	otherOrderID := kernel.NewUUID()

	suite.addNotification(kernel.NewUUID(), orderID, false, now)
	suite.addNotification(kernel.NewUUID(), orderID, true, now)
	kept := suite.addNotification(kernel.NewUUID(), otherOrderID, false, now)

	suite.Require().NoError(suite.repository.DeleteByOrder(ctx, orderID, nil))

	suite.assertNotificationCount(1)
	_, err := suite.repository.Get(ctx, kept.ID())
	suite.Require().NoError(err)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestDeleteByOrder_SparesExceptedRecipient() {
	ctx := context.Background()
	now := time.Now().UTC()
	orderID := kernel.NewUUID()
	sparedUserID := kernel.NewUUID()

	suite.addNotification(kernel.NewUUID(), orderID, false, now)
	spared := suite.addNotification(sparedUserID, orderID, false, now)

	suite.Require().NoError(suite.repository.DeleteByOrder(ctx, orderID, &sparedUserID))

	suite.assertNotificationCount(1)
	retrieved, err := suite.repository.Get(ctx, spared.ID())
	suite.Require().NoError(err)
	suite.Equal(sparedUserID, retrieved.UserID())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestDeleteReadOlderThan_DeletesOnlyAgedReadRows() {
	ctx := context.Background()
	old := time.Now().UTC().Add(-48 * time.Hour)
	fresh := time.Now().UTC()
	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	suite.addNotification(kernel.NewUUID(), kernel.NewUUID(), true, old)
	suite.addNotification(kernel.NewUUID(), kernel.NewUUID(), true, old)
	suite.addNotification(kernel.NewUUID(), kernel.NewUUID(), false, old)
	suite.addNotification(kernel.NewUUID(), kernel.NewUUID(), true, fresh)

	deleted, err := suite.repository.DeleteReadOlderThan(ctx, cutoff, 100)
	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)

	// Unread rows survive regardless of age.
	suite.assertNotificationCount(2)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestDeleteReadOlderThan_RespectsBatchLimit() {
	ctx := context.Background()
	old := time.Now().UTC().Add(-48 * time.Hour)
	cutoff := time.Now().UTC()

	for range 5 {
		suite.addNotification(kernel.NewUUID(), kernel.NewUUID(), true, old)
	}

	deleted, err := suite.repository.DeleteReadOlderThan(ctx, cutoff, 3)
	suite.Require().NoError(err)
	suite.Equal(int64(3), deleted)

	deleted, err = suite.repository.DeleteReadOlderThan(ctx, cutoff, 3)
	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)
}

// addNotification persists an order-created notification for userID.
func (suite *NotificationRepositoryIntegrationTestSuite) addNotification(
	userID kernel.UUID, orderID kernel.UUID, read bool, createdAt time.Time,
) *notification.Notification {
	entity, err := notification.RestoreNotification(
		kernel.NewUUID(),
		userID,
		notification.TypeOrderCreated,
		"Order created",
		"Your order was created",
		notification.OrderPayload{OrderID: orderID},
		read,
		createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), entity))
	return entity
}

// assertNotificationCount verifies the number of notifications in the database.
func (suite *NotificationRepositoryIntegrationTestSuite) assertNotificationCount(expected int) {
	var count int64
	err := suite.db.Model(&notificationrepo.NotificationDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestNotificationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepositoryIntegrationTestSuite))
}
