package order_test

import (
	"testing"

	"bondi/internal/core/domain/model/order"
	"bondi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "Unknown"},
		{order.Created, "Created"},
		{order.Assigned, "Assigned"},
		{order.Completed, "Completed"},
		{order.Status(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("round trips valid statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Created, order.Assigned, order.Completed} {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, name := range []string{"Unknown", "", "created"} {
			_, err := order.ParseStatus(name)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("assign from created and assigned", func(t *testing.T) {
		for _, s := range []order.Status{order.Created, order.Assigned} {
			next, err := s.Assign()
			require.NoError(t, err)
			assert.Equal(t, order.Assigned, next)
		}
	})

	t.Run("assign from completed fails", func(t *testing.T) {
		_, err := order.Completed.Assign()
		require.Error(t, err)
	})

	t.Run("complete only from assigned", func(t *testing.T) {
		next, err := order.Assigned.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.Completed, next)

		_, err = order.Created.Complete()
		require.Error(t, err)
	})

	t.Run("volume only changes while created", func(t *testing.T) {
		assert.True(t, order.Created.CanChangeVolume())
		assert.False(t, order.Assigned.CanChangeVolume())
		assert.False(t, order.Completed.CanChangeVolume())
	})
}
