package commands

import (
	"context"

	"bondi/internal/core/domain/model/order"
	"bondi/internal/core/ports"
)

// AssignOrderCommandHandler loads the order, assigns the courier and commits.
// Unknown orders fail with errs.ErrObjectNotFound.
type AssignOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewAssignOrderCommandHandler(uowFactory ports.UnitOfWorkFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{uowFactory: uowFactory}
}

func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Assign(cmd.Courier())
	})
}
