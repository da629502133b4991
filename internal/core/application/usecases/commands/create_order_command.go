package commands

import (
	"errors"

	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrVolumeIsInvalid = errors.New("volume must be greater than 0")
)

// CreateOrderCommand represents a request to register a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewID(), 25)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	volume  int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates that the order ID is set and the volume is positive.
func NewCreateOrderCommand(orderID kernel.ID, volume int) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVolume(volume),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c CreateOrderCommand) Volume() int {
	return c.volume
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setVolume(volume int) error {
	if volume <= 0 {
		return ErrVolumeIsInvalid
	}

	c.volume = volume
	return nil
}
