package jobs

import (
	"sync"
	"time"
)

// HealthStatus holds the result of the most recent storage probe. It is safe
// for concurrent use.
type HealthStatus struct {
	mu        sync.RWMutex
	lastErr   error
	checkedAt time.Time
}

func NewHealthStatus() *HealthStatus {
	return &HealthStatus{}
}

// Record stores the outcome of a probe and reports whether it differs in
// health from the previous one.
func (s *HealthStatus) Record(err error, at time.Time) (changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed = (s.lastErr == nil) != (err == nil)
	s.lastErr = err
	s.checkedAt = at
	return changed
}

// LastError is nil while the storage is healthy or has not been probed yet.
func (s *HealthStatus) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *HealthStatus) CheckedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkedAt
}
