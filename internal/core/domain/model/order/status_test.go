package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", order.StatusPending.String())
	assert.Equal(t, "in-transit", order.StatusInTransit.String())
	assert.Equal(t, "delivered", order.StatusDelivered.String())
	assert.Equal(t, "cancelled", order.StatusCancelled.String())
	assert.Equal(t, "unknown", order.StatusUnknown.String())
	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    order.Status
		wantErr bool
	}{
		{input: "pending", want: order.StatusPending},
		{input: "in-transit", want: order.StatusInTransit},
		{input: "delivered", want: order.StatusDelivered},
		{input: "cancelled", want: order.StatusCancelled},
		{input: "unknown", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := order.StatusFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.StatusPending.Validate())
	require.NoError(t, order.StatusCancelled.Validate())
	require.Error(t, order.StatusUnknown.Validate())
	require.Error(t, order.Status(99).Validate())
}

func TestStatus_Accept(t *testing.T) {
	t.Run("pending can be accepted", func(t *testing.T) {
		next, err := order.StatusPending.Accept()
		require.NoError(t, err)
		assert.Equal(t, order.StatusInTransit, next)
	})

	t.Run("non-pending cannot be accepted", func(t *testing.T) {
		for _, s := range []order.Status{order.StatusInTransit, order.StatusDelivered, order.StatusCancelled} {
			_, err := s.Accept()
			require.ErrorIs(t, err, errs.ErrConflict, s.String())
		}
	})
}

func TestStatus_Deliver(t *testing.T) {
	t.Run("in-transit can be delivered", func(t *testing.T) {
		next, err := order.StatusInTransit.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, next)
	})

	t.Run("other statuses cannot be delivered", func(t *testing.T) {
		for _, s := range []order.Status{order.StatusPending, order.StatusDelivered, order.StatusCancelled} {
			_, err := s.Deliver()
			require.ErrorIs(t, err, errs.ErrConflict, s.String())
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("pending and in-transit can be cancelled", func(t *testing.T) {
		for _, s := range []order.Status{order.StatusPending, order.StatusInTransit} {
			next, err := s.Cancel()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.StatusCancelled, next)
		}
	})

	t.Run("terminal statuses cannot be cancelled", func(t *testing.T) {
		for _, s := range []order.Status{order.StatusDelivered, order.StatusCancelled} {
			_, err := s.Cancel()
			require.ErrorIs(t, err, errs.ErrConflict, s.String())
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct{ from, to order.Status }{
		{order.StatusPending, order.StatusInTransit},
		{order.StatusPending, order.StatusCancelled},
		{order.StatusInTransit, order.StatusDelivered},
		{order.StatusInTransit, order.StatusCancelled},
	}
	for _, tt := range allowed {
		require.NoError(t, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	denied := []struct{ from, to order.Status }{
		{order.StatusPending, order.StatusDelivered},
		{order.StatusDelivered, order.StatusPending},
		{order.StatusDelivered, order.StatusCancelled},
		{order.StatusCancelled, order.StatusInTransit},
		{order.StatusInTransit, order.StatusPending},
	}
	for _, tt := range denied {
		require.ErrorIs(t, tt.from.CanTransitionTo(tt.to), errs.ErrConflict, "%s -> %s", tt.from, tt.to)
	}

	require.ErrorIs(t, order.StatusPending.CanTransitionTo(order.StatusUnknown), errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusInTransit.IsTerminal())
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	require.Error(t, order.StatusPending.ValidateCanHaveCourier(true))
	require.NoError(t, order.StatusPending.ValidateCanHaveCourier(false))

	require.NoError(t, order.StatusInTransit.ValidateCanHaveCourier(true))
	require.Error(t, order.StatusInTransit.ValidateCanHaveCourier(false))

	require.NoError(t, order.StatusDelivered.ValidateCanHaveCourier(true))
	require.Error(t, order.StatusDelivered.ValidateCanHaveCourier(false))

	require.NoError(t, order.StatusCancelled.ValidateCanHaveCourier(true))
	require.NoError(t, order.StatusCancelled.ValidateCanHaveCourier(false))
}
