package commands

import (
	"context"
	"errors"

	"bondi/internal/core/domain/model/order"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"
)

// CreateOrderCommandHandler registers new orders in Created status.
//
// The handler first tracks a reference for the requested ID and rolls it
// back: a successful restore means the ID is taken. Otherwise the new order
// replaces the reference in the unit of work and is committed. A taken ID
// fails with errs.ErrObjectAlreadyExists.
//
// A failed commit is returned as is: nothing was stored for the new order,
// so there is no state to roll back to.
type CreateOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewCreateOrderCommandHandler(uowFactory ports.UnitOfWorkFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	_, err := loadOrder(ctx, uow, cmd.OrderID())
	switch {
	case err == nil:
		return errs.NewObjectAlreadyExistsError("order", cmd.OrderID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Volume())
	if err != nil {
		return err
	}

	if err := uow.Add(o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
