package ports

import (
	"context"

	"bondi/internal/core/domain/model/aggregate"
)

// UnitOfWork tracks aggregates for one business transaction and applies
// Store or Restore to all of them at once.
type UnitOfWork interface {
	Add(aggregate aggregate.Aggregate) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory creates a fresh UnitOfWork per business transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
