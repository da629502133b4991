// Package redisstore keeps aggregate snapshots as JSON documents in Redis.
// Keys are namespaced: {prefix}:{aggregate id}.
package redisstore

import (
	"context"
	"errors"
	"time"

	"bondi/internal/adapters/out/snapshot"
	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key namespace used when none is configured.
const DefaultPrefix = "bondi:snapshot"

var (
	_ ports.Storage = (*Storage)(nil)
	_ ports.Pinger  = (*Storage)(nil)
)

type Storage struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type Option func(*Storage)

func WithPrefix(prefix string) Option {
	return func(s *Storage) {
		s.prefix = prefix
	}
}

// WithTTL expires snapshots after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Storage) {
		s.ttl = ttl
	}
}

func NewStorage(client redis.UniversalClient, opts ...Option) (*Storage, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}

	s := &Storage{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	if s.prefix == "" {
		return nil, errs.NewValueIsRequiredError("prefix")
	}
	if s.ttl < 0 {
		return nil, errs.NewValueIsInvalidError("ttl")
	}
	return s, nil
}

// Key returns the Redis key holding the snapshot for id.
func (s *Storage) Key(id string) string {
	return s.prefix + ":" + id
}

func (s *Storage) Store(ctx context.Context, agg aggregate.Aggregate) error {
	id := agg.Root().ID()

	data, err := snapshot.Marshal(agg)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.Key(id), data, s.ttl).Err(); err != nil {
		return errs.NewStorageFailureErrorWithCause("store", id, err)
	}
	return nil
}

func (s *Storage) Restore(ctx context.Context, agg aggregate.Aggregate) error {
	id := agg.Root().ID()

	data, err := s.client.Get(ctx, s.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return errs.NewObjectNotFoundErrorWithCause("aggregate", id, err)
	}
	if err != nil {
		return errs.NewStorageFailureErrorWithCause("restore", id, err)
	}

	return snapshot.Unmarshal(data, agg)
}

func (s *Storage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errs.NewStorageFailureErrorWithCause("ping", "redis", err)
	}
	return nil
}
