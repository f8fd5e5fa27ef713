package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	courierUser := newUser(t, user.RoleCourier)
	owner := newUser(t, user.RoleClient)
	orderAggregate := newTestOrder(t, owner.ID())

	cmd, err := commands.NewAcceptOrderCommand(orderAggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notificationRepo := new(MockNotificationRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderAggregate.ID()).Return(orderAggregate, nil).Once(),
		orderRepo.On("UpdateWithStatusGuard", ctx, orderAggregate, order.StatusPending).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Add", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			payload, ok := n.Payload().(notification.AssignmentPayload)
			return ok && n.Type() == notification.TypeOrderAccepted &&
				n.UserID().IsEqual(owner.ID()) &&
				payload.CourierID.IsEqual(courierUser.ID())
		})).Return(nil).Once(),
		notificationRepo.On("DeleteByOrder", ctx, orderAggregate.ID(), mock.MatchedBy(func(except *kernel.UUID) bool {
			return except != nil && except.IsEqual(courierUser.ID())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, guardFor(ctx, courierUser))

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.StatusInTransit, orderAggregate.Status())
	require.NotNil(t, orderAggregate.CourierID())
	assert.True(t, courierUser.ID().IsEqual(*orderAggregate.CourierID()))
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_NonCourierForbidden(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAcceptOrderCommand(kernel.NewUUID())
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	handler := commands.NewAcceptOrderCommandHandler(factory, guardFor(ctx, newUser(t, user.RoleClient)))

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptOrderCommandHandler_Handle_AlreadyAccepted(t *testing.T) {
	// An order that already moved off pending conflicts in memory,
	// before any write is attempted.
	ctx := t.Context()
	courierUser := newUser(t, user.RoleCourier)
	orderAggregate := newTestOrder(t, kernel.NewUUID())
	require.NoError(t, orderAggregate.Accept(kernel.NewUUID(), time.Now()))

	cmd, err := commands.NewAcceptOrderCommand(orderAggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, orderAggregate.ID()).Return(orderAggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, guardFor(ctx, courierUser))

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	orderRepo.AssertNotCalled(t, "UpdateWithStatusGuard", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_LostRace(t *testing.T) {
	// The aggregate read still looked pending, but another courier committed
	// first: the status-guarded update matches no row and surfaces a conflict.
	ctx := t.Context()
	courierUser := newUser(t, user.RoleCourier)
	orderAggregate := newTestOrder(t, kernel.NewUUID())

	cmd, err := commands.NewAcceptOrderCommand(orderAggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, orderAggregate.ID()).Return(orderAggregate, nil).Once()
	orderRepo.On("UpdateWithStatusGuard", ctx, orderAggregate, order.StatusPending).
		Return(errs.NewConflictError("status", "order is no longer available")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, guardFor(ctx, courierUser))

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertNotCalled(t, "NotificationRepository")
}
