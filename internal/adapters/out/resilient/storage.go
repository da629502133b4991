// Package resilient decorates a storage with a per-call timeout and a
// circuit breaker. Missing snapshots and caller cancellations are not
// storage faults and never trip the breaker.
package resilient

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"

	"github.com/sony/gobreaker/v2"
)

var (
	_ ports.Storage  = (*Storage)(nil)
	_ ports.Pinger   = (*Storage)(nil)
	_ ports.Migrator = (*Storage)(nil)
)

// Config configures the breaker and the timeout.
type Config struct {
	Name string

	// MaxRequests is the number of requests allowed in the half-open state.
	MaxRequests uint32
	// Interval clears the failure counts while closed. Zero never clears them.
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open.
	OpenTimeout time.Duration
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold uint32
	// CallTimeout bounds each Store and Restore. Zero disables it.
	CallTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Name:             "storage",
		MaxRequests:      1,
		Interval:         time.Minute,
		OpenTimeout:      30 * time.Second,
		FailureThreshold: 5,
		CallTimeout:      5 * time.Second,
	}
}

type Storage struct {
	inner   ports.Storage
	breaker *gobreaker.CircuitBreaker[any]
	timeout time.Duration
	logger  *slog.Logger
}

func NewStorage(inner ports.Storage, cfg Config, logger *slog.Logger) (*Storage, error) {
	if inner == nil {
		return nil, errs.NewValueIsRequiredError("inner")
	}
	if cfg.FailureThreshold == 0 {
		return nil, errs.NewValueIsInvalidError("failure threshold")
	}
	if cfg.CallTimeout < 0 {
		return nil, errs.NewValueIsInvalidError("call timeout")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Storage{
		inner:   inner,
		timeout: cfg.CallTimeout,
		logger:  logger.With("component", "resilient_storage"),
	}

	s.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn("Circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: isSuccessful,
	})

	return s, nil
}

func (s *Storage) Store(ctx context.Context, agg aggregate.Aggregate) error {
	return s.execute(ctx, "store", agg, s.inner.Store)
}

func (s *Storage) Restore(ctx context.Context, agg aggregate.Aggregate) error {
	return s.execute(ctx, "restore", agg, s.inner.Restore)
}

// State reports the breaker state.
func (s *Storage) State() gobreaker.State {
	return s.breaker.State()
}

// Ping bypasses the breaker so probes see the real reachability.
func (s *Storage) Ping(ctx context.Context) error {
	if p, ok := s.inner.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	if m, ok := s.inner.(ports.Migrator); ok {
		return m.Migrate(ctx)
	}
	return nil
}

func (s *Storage) execute(
	ctx context.Context,
	operation string,
	agg aggregate.Aggregate,
	fn func(context.Context, aggregate.Aggregate) error,
) error {
	_, err := s.breaker.Execute(func() (any, error) {
		callCtx := ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		return nil, fn(callCtx, agg)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errs.NewStorageFailureErrorWithCause(operation, agg.Root().ID(), err)
	}
	return err
}

func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, context.Canceled)
}
