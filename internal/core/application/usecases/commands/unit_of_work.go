// Package commands contains business operations that modify orders.
// Every handler runs on a fresh unit of work: existing orders are loaded by
// tracking a reference and rolling it back from storage, mutated in memory and
// then committed.
package commands

import (
	"context"
	"errors"

	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/core/domain/model/order"
	"bondi/internal/core/ports"
)

// loadOrder tracks a reference for id and hydrates it from storage.
func loadOrder(ctx context.Context, uow ports.UnitOfWork, id kernel.ID) (*order.Order, error) {
	o, err := order.Reference(id)
	if err != nil {
		return nil, err
	}
	if err := uow.Add(o); err != nil {
		return nil, err
	}
	if err := uow.Rollback(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// commit stores the tracked orders. When storing fails the tracked orders
// are restored so no half-applied state stays in memory.
func commit(ctx context.Context, uow ports.UnitOfWork) error {
	if err := uow.Commit(ctx); err != nil {
		return errors.Join(err, uow.Rollback(ctx))
	}
	return nil
}

// mutateOrder is the load, mutate, commit cycle shared by the handlers that
// change an existing order.
func mutateOrder(
	ctx context.Context,
	factory ports.UnitOfWorkFactory,
	id kernel.ID,
	mutate func(o *order.Order) error,
) error {
	uow := factory.Create()

	o, err := loadOrder(ctx, uow, id)
	if err != nil {
		return err
	}

	if err := mutate(o); err != nil {
		return err
	}

	return commit(ctx, uow)
}
