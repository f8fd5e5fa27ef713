package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetAllEnabledByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) CreditBalance(ctx context.Context, id kernel.UUID, amount float64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UUID, limit int) (int64, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID, exceptUserID *kernel.UUID) error {
	args := m.Called(ctx, orderID, exceptUserID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).(int64), args.Error(1)
}

func newCourierUser(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), name, name+"@example.com", user.RoleCourier)
	require.NoError(t, err)
	return u
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Now()
	o, err := order.NewOrder(
		kernel.NewUUID(), order.NewOrderNumber(now), kernel.NewUUID(),
		"parcel", "A", "B", nil, nil, nil, now)
	require.NoError(t, err)
	return o
}

func TestNotificationFanout_Notify(t *testing.T) {
	ctx := t.Context()
	fanout := services.NewNotificationFanout()
	recipientID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	t.Run("inserts unread notification", func(t *testing.T) {
		notifications := new(MockNotificationRepository)
		notifications.On("Add", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID().IsEqual(recipientID) &&
				n.Type() == notification.TypeOrderCreated &&
				!n.IsRead()
		})).Return(nil).Once()

		err := fanout.Notify(ctx, notifications, recipientID,
			notification.TypeOrderCreated, "Order placed", "Waiting for a courier",
			notification.OrderPayload{OrderID: orderID}, time.Now())

		require.NoError(t, err)
		notifications.AssertExpectations(t)
	})

	t.Run("mismatched payload fails without insert", func(t *testing.T) {
		notifications := new(MockNotificationRepository)

		err := fanout.Notify(ctx, notifications, recipientID,
			notification.TypeOrderAccepted, "t", "m",
			notification.OrderPayload{OrderID: orderID}, time.Now())

		require.Error(t, err)
		notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}

func TestNotificationFanout_BroadcastOrderAvailable(t *testing.T) {
	ctx := t.Context()
	fanout := services.NewNotificationFanout()

	t.Run("notifies every enabled courier", func(t *testing.T) {
		o := newPendingOrder(t)
		couriers := []*user.User{
			newCourierUser(t, "alice"),
			newCourierUser(t, "bob"),
			newCourierUser(t, "carol"),
		}

		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		users.On("GetAllEnabledByRole", ctx, user.RoleCourier).Return(couriers, nil).Once()
		notifications.On("Add", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			payload, ok := n.Payload().(notification.OrderPayload)
			return ok && payload.OrderID.IsEqual(o.ID()) &&
				n.Type() == notification.TypeOrderAvailable
		})).Return(nil).Times(3)

		count, err := fanout.BroadcastOrderAvailable(ctx, users, notifications, o, time.Now())

		require.NoError(t, err)
		assert.Equal(t, 3, count)
		users.AssertExpectations(t)
		notifications.AssertExpectations(t)
	})

	t.Run("no couriers means no inserts", func(t *testing.T) {
		o := newPendingOrder(t)

		users := new(MockUserRepository)
		notifications := new(MockNotificationRepository)
		users.On("GetAllEnabledByRole", ctx, user.RoleCourier).Return([]*user.User{}, nil).Once()

		count, err := fanout.BroadcastOrderAvailable(ctx, users, notifications, o, time.Now())

		require.NoError(t, err)
		assert.Zero(t, count)
		notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}

func TestNotificationFanout_BroadcastToAdmins(t *testing.T) {
	ctx := t.Context()
	fanout := services.NewNotificationFanout()

	admin, err := user.NewUser(kernel.NewUUID(), "root", "root@example.com", user.RoleAdmin)
	require.NoError(t, err)

	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	users.On("GetAllEnabledByRole", ctx, user.RoleAdmin).Return([]*user.User{admin}, nil).Once()
	notifications.On("Add", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID().IsEqual(admin.ID()) &&
			n.Type() == notification.TypeDepositRequested
	})).Return(nil).Once()

	count, err := fanout.BroadcastToAdmins(ctx, users, notifications,
		notification.TypeDepositRequested, "Deposit pending", "A deposit awaits review",
		notification.DepositPayload{TransactionID: kernel.NewUUID(), Amount: 75}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	users.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestNotificationFanout_PruneByOrder(t *testing.T) {
	ctx := t.Context()
	fanout := services.NewNotificationFanout()
	orderID := kernel.NewUUID()

	t.Run("prunes all copies", func(t *testing.T) {
		notifications := new(MockNotificationRepository)
		notifications.On("DeleteByOrder", ctx, orderID, (*kernel.UUID)(nil)).Return(nil).Once()

		require.NoError(t, fanout.PruneByOrder(ctx, notifications, orderID, nil))
		notifications.AssertExpectations(t)
	})

	t.Run("spares the excepted recipient", func(t *testing.T) {
		courierID := kernel.NewUUID()

		notifications := new(MockNotificationRepository)
		notifications.On("DeleteByOrder", ctx, orderID, &courierID).Return(nil).Once()

		require.NoError(t, fanout.PruneByOrder(ctx, notifications, orderID, &courierID))
		notifications.AssertExpectations(t)
	})

	t.Run("invalid order id fails", func(t *testing.T) {
		var invalid kernel.UUID
		require.Error(t, fanout.PruneByOrder(ctx, new(MockNotificationRepository), invalid, nil))
	})
}
