package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/errs"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			"flowers", "1 Pickup Lane", "2 Delivery Road", nil, nil, nil)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.NoError(t, cmd.OrderID().Validate())
		assert.Equal(t, "flowers", cmd.Item())
		assert.Nil(t, cmd.TotalAmount())
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("", "A", "B", nil, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = commands.NewCreateOrderCommand("x", "", "B", nil, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = commands.NewCreateOrderCommand("x", "A", "", nil, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		amount := -1.0
		_, err := commands.NewCreateOrderCommand("x", "A", "B", nil, nil, &amount)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
