package queries

import (
	"context"

	"bondi/internal/core/domain/model/order"
	"bondi/internal/core/ports"
)

// GetOrderQueryHandler hydrates the order through a fresh unit of work that
// is never committed.
type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := order.Reference(query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Add(o); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err := uow.Rollback(ctx); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:      o.ID(),
		Version: o.Version(),
		Volume:  o.Volume(),
		Status:  o.Status().String(),
		Courier: o.Courier(),
	}, nil
}
