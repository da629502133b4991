package commands

import (
	"errors"

	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/pkg/guard"
)

var (
	ErrAssignOrderCommandIsNotConstructed = errors.New(
		"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
	)
	ErrCourierIsRequired = errors.New("courier is required")
)

// AssignOrderCommand hands an order to a courier.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID, "courier-7")
//	if err != nil {
//	    return err
//	}
//	return handler.Handle(ctx, cmd)
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	courier string

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID kernel.ID, courier string) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourier(courier),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c AssignOrderCommand) Courier() string {
	return c.courier
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setCourier(courier string) error {
	if courier == "" {
		return ErrCourierIsRequired
	}

	c.courier = courier
	return nil
}
