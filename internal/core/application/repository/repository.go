// Package repository implements the unit of work that tracks aggregates for
// one business transaction.
//
// A Repository is an identity map from aggregate identifier to aggregate. Add
// registers an aggregate, replacing any earlier one with the same identifier.
// Commit stores every tracked aggregate and Rollback restores every tracked
// aggregate from storage, each visiting every entry exactly once per call, in
// ascending identifier order. Entries stay tracked across commits and
// rollbacks until the Repository itself is discarded.
//
// Failure policy: commit and rollback never stop at the first failing
// aggregate. Every entry is visited and all failures are returned together as
// an *errs.BatchError, so callers can tell which aggregates were applied.
//
// A Repository belongs to a single transaction driven by a single caller.
// Overlapping Add, Commit and Rollback calls from several goroutines are
// misuse and are rejected with errs.ErrConcurrentUse; use one Repository per
// transaction (see Factory). The read accessors Len, Get and IDs never fail
// and may be called at any time, including while a Commit or Rollback is in
// flight.
//
// Usage:
//
//	repo := factory.Create()
//	if err := repo.Add(o); err != nil {
//	    return err
//	}
//	if err := o.ChangeVolume(7); err != nil {
//	    return errors.Join(err, repo.Rollback(ctx))
//	}
//	return repo.Commit(ctx)
package repository

import (
	"context"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"
)

const (
	operationCommit   = "commit"
	operationRollback = "rollback"
)

var _ ports.UnitOfWork = (*Repository)(nil)

// Repository is the identity-map backed unit of work.
type Repository struct {
	storage ports.Storage
	logger  *slog.Logger

	// mu guards the map; busy serializes the operations that use it.
	mu         sync.RWMutex
	aggregates map[string]aggregate.Aggregate

	busy atomic.Bool
}

// New creates an empty unit of work on top of storage. A nil logger falls
// back to slog.Default().
func New(storage ports.Storage, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		storage:    storage,
		aggregates: make(map[string]aggregate.Aggregate),
		logger:     logger.With("component", "unit_of_work"),
	}
}

// Add tracks the aggregate under its root identifier. An aggregate with the
// same identifier that is already tracked is replaced.
//
// Aggregates without a root or with an empty identifier are rejected with an
// error matching errs.ErrValueIsRequired.
func (r *Repository) Add(agg aggregate.Aggregate) error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.release()

	id, err := identify(agg)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.aggregates[id] = agg
	r.mu.Unlock()
	return nil
}

// Commit stores every tracked aggregate.
func (r *Repository) Commit(ctx context.Context) error {
	return r.apply(ctx, operationCommit, r.storage.Store)
}

// Rollback restores every tracked aggregate from storage, discarding the
// in-memory changes made since it was last stored.
func (r *Repository) Rollback(ctx context.Context) error {
	return r.apply(ctx, operationRollback, r.storage.Restore)
}

// Len returns the number of tracked aggregates.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.aggregates)
}

// Get returns the tracked aggregate for id.
func (r *Repository) Get(id string) (aggregate.Aggregate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agg, ok := r.aggregates[id]
	return agg, ok
}

// IDs returns the tracked identifiers in the order Commit and Rollback visit them.
func (r *Repository) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.aggregates))
}

// entries returns the tracked aggregates in identifier order.
func (r *Repository) entries() []aggregate.Aggregate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := slices.Sorted(maps.Keys(r.aggregates))
	aggs := make([]aggregate.Aggregate, len(ids))
	for i, id := range ids {
		aggs[i] = r.aggregates[id]
	}
	return aggs
}

func (r *Repository) apply(
	ctx context.Context,
	operation string,
	fn func(context.Context, aggregate.Aggregate) error,
) error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.release()

	aggs := r.entries()
	if len(aggs) == 0 {
		return nil
	}

	var failures []errs.AggregateFailure
	for _, agg := range aggs {
		if err := fn(ctx, agg); err != nil {
			failures = append(failures, errs.AggregateFailure{ID: agg.Root().ID(), Cause: err})
		}
	}

	if len(failures) > 0 {
		batchErr := errs.NewBatchError(operation, len(aggs), failures)
		r.logger.WarnContext(ctx, "Unit of work "+operation+" failed",
			"aggregates", len(aggs),
			"failed", len(failures),
			"failed_ids", batchErr.FailedIDs(),
			"error", batchErr,
		)
		return batchErr
	}

	r.logger.DebugContext(ctx, "Unit of work "+operation+" completed", "aggregates", len(aggs))
	return nil
}

func (r *Repository) acquire() error {
	if !r.busy.CompareAndSwap(false, true) {
		return errs.ErrConcurrentUse
	}
	return nil
}

func (r *Repository) release() {
	r.busy.Store(false)
}

func identify(agg aggregate.Aggregate) (string, error) {
	if isNil(agg) {
		return "", errs.NewValueIsRequiredError("aggregate")
	}
	root := agg.Root()
	if isNil(root) {
		return "", errs.NewValueIsRequiredError("aggregate root")
	}
	id := root.ID()
	if id == "" {
		return "", errs.NewValueIsRequiredError("aggregate id")
	}
	return id, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
