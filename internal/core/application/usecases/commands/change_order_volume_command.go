package commands

import (
	"errors"

	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/pkg/guard"
)

var ErrChangeOrderVolumeCommandIsNotConstructed = errors.New(
	"ChangeOrderVolumeCommand must be created via NewChangeOrderVolumeCommand constructor",
)

// ChangeOrderVolumeCommand updates the package volume of an order that has
// not been assigned yet.
//
// Example:
//
//	cmd, err := NewChangeOrderVolumeCommand(kernel.MustIDFromString("order-1"), 7)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to change volume: %w", err)
//	}
type ChangeOrderVolumeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	volume  int

	guard guard.ConstructorGuard
}

func NewChangeOrderVolumeCommand(orderID kernel.ID, volume int) (ChangeOrderVolumeCommand, error) {
	cmd := ChangeOrderVolumeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVolume(volume),
	); err != nil {
		return ChangeOrderVolumeCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderVolumeCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderVolumeCommandIsNotConstructed)
}

func (c ChangeOrderVolumeCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c ChangeOrderVolumeCommand) Volume() int {
	return c.volume
}

func (c *ChangeOrderVolumeCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderVolumeCommand) setVolume(volume int) error {
	if volume <= 0 {
		return ErrVolumeIsInvalid
	}

	c.volume = volume
	return nil
}
