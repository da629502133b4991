package commands

import (
	"context"

	"bondi/internal/core/domain/model/order"
	"bondi/internal/core/ports"
)

type ChangeOrderVolumeCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewChangeOrderVolumeCommandHandler(uowFactory ports.UnitOfWorkFactory) ChangeOrderVolumeCommandHandler {
	return ChangeOrderVolumeCommandHandler{uowFactory: uowFactory}
}

func (h *ChangeOrderVolumeCommandHandler) Handle(ctx context.Context, cmd ChangeOrderVolumeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.ChangeVolume(cmd.Volume())
	})
}
