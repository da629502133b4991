package commands_test

import (
	"errors"
	"testing"

	"bondi/internal/core/application/usecases/commands"
	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/core/domain/model/order"
	"bondi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.MustIDFromString("order-1"), 10)
	require.NoError(t, err)

	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Add", mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(notFound("order-1")).Once(),
		uow.On("Add", mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	reference := uow.Calls[0].Arguments.Get(0).(*order.Order)
	created := uow.Calls[2].Arguments.Get(0).(*order.Order)
	assert.NotSame(t, reference, created)
	assert.Equal(t, "order-1", created.ID())
	assert.Equal(t, 10, created.Volume())
	assert.Equal(t, order.Created, created.Status())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUnitOfWorkFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AlreadyExists(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.MustIDFromString("order-1"), 10)
	require.NoError(t, err)

	uow := new(MockUnitOfWork)
	uow.On("Add", mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_LookupFailure(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.MustIDFromString("order-1"), 10)
	require.NoError(t, err)
	failure := errs.NewStorageFailureErrorWithCause("restore", "order-1", errors.New("connection refused"))

	uow := new(MockUnitOfWork)
	uow.On("Add", mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Rollback", ctx).Return(failure).Once()
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageFailure)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.MustIDFromString("order-1"), 10)
	require.NoError(t, err)
	commitErr := errs.NewBatchError("commit", 1, []errs.AggregateFailure{
		{ID: "order-1", Cause: errs.NewStorageFailureErrorWithCause("store", "order-1", errors.New("disk full"))},
	})

	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Add", mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(notFound("order-1")).Once(),
		uow.On("Add", mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(commitErr).Once(),
	)
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageFailure)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
	uow.AssertNumberOfCalls(t, "Rollback", 1)
}
