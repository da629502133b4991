package queries_test

import (
	"context"
	"testing"

	"bondi/internal/adapters/out/memory"
	"bondi/internal/core/application/repository"
	"bondi/internal/core/application/usecases/queries"
	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/core/domain/model/order"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
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

func newHandler(storage *memory.Storage) queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(repository.NewFactory(storage, nil))
}

func TestGetOrderQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storage := memory.NewStorage()
	o, err := order.NewOrder(kernel.MustIDFromString("order-1"), 5)
	require.NoError(t, err)
	require.NoError(t, o.Assign("courier-1"))
	require.NoError(t, storage.Store(ctx, o))

	query, err := queries.NewGetOrderQuery(kernel.MustIDFromString("order-1"))
	require.NoError(t, err)

	resp, err := newHandler(storage).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, queries.GetOrderQueryResponse{
		ID:      "order-1",
		Version: 1,
		Volume:  5,
		Status:  "Assigned",
		Courier: "courier-1",
	}, resp)
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	query, err := queries.NewGetOrderQuery(kernel.MustIDFromString("missing"))
	require.NoError(t, err)

	_, err = newHandler(memory.NewStorage()).Handle(t.Context(), query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandler_Handle_NeverCommits(t *testing.T) {
	ctx := t.Context()
	query, err := queries.NewGetOrderQuery(kernel.MustIDFromString("order-1"))
	require.NoError(t, err)

	uow := new(MockUnitOfWork)
	uow.On("Add", mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Rollback", ctx).Return(errs.NewObjectNotFoundError("aggregate", "order-1")).Once()

	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow).Once()

	h := queries.NewGetOrderQueryHandler(factory)
	_, err = h.Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestGetOrderQueryHandler_Handle_ValidationError(t *testing.T) {
	_, err := newHandler(memory.NewStorage()).Handle(t.Context(), queries.GetOrderQuery{})

	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
