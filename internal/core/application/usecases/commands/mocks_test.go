package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/transaction"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
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

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithStatusGuard(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error {
	args := m.Called(ctx, aggregate, expectedStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, profile *courier.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, profile *courier.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Profile), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Add(ctx context.Context, aggregate *transaction.Transaction) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateWithStatusGuard(ctx context.Context, aggregate *transaction.Transaction, expectedStatus transaction.Status) error {
	args := m.Called(ctx, aggregate, expectedStatus)
	return args.Error(0)
}

func (m *MockTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
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

// MockUoW satisfies every unit of work interface in the package.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) TransactionRepository() ports.TransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.TransactionRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDeliveryUoWFactory struct {
	mock.Mock
}

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockLedgerUoWFactory struct {
	mock.Mock
}

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockNotificationUoWFactory struct {
	mock.Mock
}

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockUserUoWFactory struct {
	mock.Mock
}

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockCourierUoWFactory struct {
	mock.Mock
}

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockCallerResolver struct {
	mock.Mock
}

func (m *MockCallerResolver) CallerID(ctx context.Context) (kernel.UUID, bool) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.UUID), args.Bool(1)
}

// newUser builds a valid user aggregate for handler tests.
func newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Pat", "pat@example.com", role)
	require.NoError(t, err)
	return u
}

// guardFor wires an access guard that resolves caller as the authenticated user.
func guardFor(ctx context.Context, caller *user.User) access.Guard {
	resolver := new(MockCallerResolver)
	users := new(MockUserRepository)
	resolver.On("CallerID", ctx).Return(caller.ID(), true)
	users.On("Get", ctx, caller.ID()).Return(caller, nil)
	return access.NewGuard(resolver, users)
}

// deniedGuard wires an access guard that resolves no identity.
func deniedGuard(ctx context.Context) access.Guard {
	resolver := new(MockCallerResolver)
	resolver.On("CallerID", ctx).Return(kernel.UUID{}, false)
	return access.NewGuard(resolver, new(MockUserRepository))
}

func newTestOrder(t *testing.T, ownerID kernel.UUID) *order.Order {
	t.Helper()
	now := time.Now()
	o, err := order.NewOrder(
		kernel.NewUUID(), order.NewOrderNumber(now), ownerID,
		"parcel", "1 Pickup Lane", "2 Delivery Road", nil, nil, nil, now)
	require.NoError(t, err)
	return o
}
