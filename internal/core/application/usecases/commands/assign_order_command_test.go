package commands_test

import (
	"testing"

	"bondi/internal/core/application/usecases/commands"
	"bondi/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignOrderCommand(t *testing.T) {
	id := kernel.NewID()

	cmd, err := commands.NewAssignOrderCommand(id, "courier-1")

	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "courier-1", cmd.Courier())
}

func TestNewAssignOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewAssignOrderCommand(kernel.ID{}, "")

	require.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
	require.ErrorIs(t, err, commands.ErrCourierIsRequired)
}

func TestAssignOrderCommand_ZeroValue(t *testing.T) {
	var cmd commands.AssignOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrAssignOrderCommandIsNotConstructed)
}
