package aggregate_test

import (
	"testing"

	"bondi/internal/core/domain/model/aggregate"

	"github.com/stretchr/testify/assert"
)

func TestRoot(t *testing.T) {
	t.Run("new root starts at version zero", func(t *testing.T) {
		r := aggregate.NewRoot("order-1")

		assert.Equal(t, "order-1", r.ID())
		assert.Equal(t, 0, r.Version())
	})

	t.Run("increment version", func(t *testing.T) {
		r := aggregate.NewRoot("order-1")
		r.IncrementVersion()
		r.IncrementVersion()

		assert.Equal(t, 2, r.Version())
	})

	t.Run("restore keeps persisted version", func(t *testing.T) {
		r := aggregate.RestoreRoot("order-1", 7)

		assert.Equal(t, "order-1", r.ID())
		assert.Equal(t, 7, r.Version())
	})

	t.Run("root satisfies entity", func(t *testing.T) {
		var e aggregate.Entity = aggregate.NewRoot("x")
		assert.Equal(t, "x", e.ID())
	})
}
