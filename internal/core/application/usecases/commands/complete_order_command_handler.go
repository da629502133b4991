package commands

import (
	"context"

	"bondi/internal/core/domain/model/order"
	"bondi/internal/core/ports"
)

type CompleteOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewCompleteOrderCommandHandler(uowFactory ports.UnitOfWorkFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle completes an Assigned order. Orders in any other status are
// rejected with errs.ErrValueIsInvalid and nothing is stored.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).Complete)
}
