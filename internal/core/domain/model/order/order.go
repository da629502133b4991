package order

import (
	"errors"
	"fmt"

	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/pkg/errs"
)

// AggregateType is the storage type name of orders.
const AggregateType = "order"

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder, RestoreOrder or Reference")
	ErrOrderIsNotHydrated    = errors.New("order reference has not been restored from storage")
)

// Order is the aggregate root for a delivery order. Every successful
// mutation increments the root version.
type Order struct {
	root aggregate.Root

	courier string
	volume  int
	status  Status

	isConstructed bool
}

// NewOrder creates an order in Created status.
//
// Example:
//
//	o, err := order.NewOrder(kernel.MustIDFromString("order-1"), 5)
//	if err != nil {
//	    return err
//	}
//	if err := repo.Add(o); err != nil {
//	    return err
//	}
//	return repo.Commit(ctx)
func NewOrder(id kernel.ID, volume int) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setVolume(volume),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Reference creates an empty order carrying only its identifier. It is meant
// to be tracked by a unit of work and filled in place by a rollback.
func Reference(id kernel.ID) (*Order, error) {
	o := &Order{isConstructed: true}
	if err := o.setID(id); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state.
func RestoreOrder(id kernel.ID, version, volume int, status Status, courier string) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setVolume(volume),
		status.Validate(),
		status.ValidateCanHaveCourier(courier != ""),
	); err != nil {
		return nil, err
	}

	o.root = aggregate.RestoreRoot(id.String(), version)
	o.status = status
	o.courier = courier
	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) Root() aggregate.Entity {
	return o.root
}

func (o *Order) AggregateType() string {
	return AggregateType
}

func (o *Order) ID() string {
	return o.root.ID()
}

func (o *Order) Version() int {
	return o.root.Version()
}

func (o *Order) Volume() int {
	return o.volume
}

func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier, or "" when none is assigned.
func (o *Order) Courier() string {
	return o.courier
}

// IsHydrated is false for references that were never restored.
func (o *Order) IsHydrated() bool {
	return o.status != Unknown
}

// ChangeVolume updates the package volume while the order is still Created.
func (o *Order) ChangeVolume(volume int) error {
	if err := o.ensureHydrated(); err != nil {
		return err
	}
	if !o.status.CanChangeVolume() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("volume cannot change in %s status", o.status),
		)
	}
	if err := o.setVolume(volume); err != nil {
		return err
	}
	o.root.IncrementVersion()
	return nil
}

// Assign hands the order to a courier. Reassigning an Assigned order is allowed.
func (o *Order) Assign(courier string) error {
	if err := o.ensureHydrated(); err != nil {
		return err
	}
	if courier == "" {
		return errs.NewValueIsRequiredError("courier")
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courier = courier
	o.root.IncrementVersion()
	return nil
}

// Complete finishes an Assigned order.
func (o *Order) Complete() error {
	if err := o.ensureHydrated(); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.root.IncrementVersion()
	return nil
}

func (o *Order) ensureHydrated() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsHydrated() {
		return ErrOrderIsNotHydrated
	}
	return nil
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.root = aggregate.NewRoot(id.String())
	return nil
}

func (o *Order) setVolume(volume int) error {
	if volume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("volume is invalid", fmt.Errorf("%d is not greater than 0", volume))
	}
	o.volume = volume
	return nil
}
