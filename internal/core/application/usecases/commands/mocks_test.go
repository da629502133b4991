package commands_test

import (
	"context"
	"encoding/json"
	"testing"

	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/core/domain/model/order"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Add(agg aggregate.Aggregate) error {
	args := m.Called(agg)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

// trackedOrder remembers the last order added to a mocked unit of work so a
// mocked rollback can hydrate it.
type trackedOrder struct {
	order *order.Order
}

func (tr *trackedOrder) capture(args mock.Arguments) {
	tr.order = args.Get(0).(*order.Order)
}

// hydrateFrom returns a Run function that restores the tracked order from stored.
func (tr *trackedOrder) hydrateFrom(t *testing.T, stored *order.Order) func(mock.Arguments) {
	t.Helper()
	data, err := json.Marshal(stored)
	require.NoError(t, err)
	return func(mock.Arguments) {
		require.NoError(t, json.Unmarshal(data, tr.order))
	}
}

func notFound(id string) error {
	return errs.NewBatchError("rollback", 1, []errs.AggregateFailure{
		{ID: id, Cause: errs.NewObjectNotFoundError("aggregate", id)},
	})
}

func storedOrder(t *testing.T, id string, volume int, courier string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustIDFromString(id), volume)
	require.NoError(t, err)
	if courier != "" {
		require.NoError(t, o.Assign(courier))
	}
	return o
}
