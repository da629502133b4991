// Package ports defines the contracts between the unit of work and the
// storage adapters that persist aggregates.
package ports

import (
	"context"

	"bondi/internal/core/domain/model/aggregate"
)

// Storage persists and reloads whole aggregates. It is the only extension
// point of the unit of work; files, databases, key-value stores and test
// doubles are all valid implementations.
type Storage interface {
	// Store durably persists the full current state of the aggregate so that a
	// later Restore with the same identifier reproduces it. Storing the same
	// state twice must be safe.
	Store(ctx context.Context, aggregate aggregate.Aggregate) error

	// Restore replaces the state of the given aggregate, in place, with its
	// last stored state. When nothing was stored for the identifier it returns
	// an error matching errs.ErrObjectNotFound and leaves the aggregate as is.
	Restore(ctx context.Context, aggregate aggregate.Aggregate) error
}

// Pinger is implemented by storages that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Migrator is implemented by storages that need a schema before first use.
type Migrator interface {
	Migrate(ctx context.Context) error
}
