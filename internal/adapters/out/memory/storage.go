// Package memory keeps aggregate snapshots in process memory. It backs tests
// and the default development configuration.
package memory

import (
	"context"
	"sync"

	"bondi/internal/adapters/out/snapshot"
	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"
)

var (
	_ ports.Storage = (*Storage)(nil)
	_ ports.Pinger  = (*Storage)(nil)
)

// Storage is safe for concurrent use by many units of work.
type Storage struct {
	mu      sync.RWMutex
	records map[string]snapshot.Record
}

func NewStorage() *Storage {
	return &Storage{records: make(map[string]snapshot.Record)}
}

func (s *Storage) Store(_ context.Context, agg aggregate.Aggregate) error {
	rec, err := snapshot.Encode(agg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *Storage) Restore(_ context.Context, agg aggregate.Aggregate) error {
	id := agg.Root().ID()

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return errs.NewObjectNotFoundError("aggregate", id)
	}

	return snapshot.Decode(rec, agg)
}

// Ping always succeeds.
func (s *Storage) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored snapshots.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
