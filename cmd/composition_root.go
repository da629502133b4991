package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "bondi/internal/adapters/in/http"
	"bondi/internal/adapters/out/filestore"
	"bondi/internal/adapters/out/memory"
	"bondi/internal/adapters/out/postgres"
	"bondi/internal/adapters/out/redisstore"
	"bondi/internal/adapters/out/resilient"
	"bondi/internal/adapters/out/sqlstore"
	"bondi/internal/core/application/repository"
	"bondi/internal/core/application/usecases/commands"
	"bondi/internal/core/application/usecases/queries"
	"bondi/internal/core/ports"
	"bondi/internal/jobs"

	"github.com/redis/go-redis/v9"
)

type CompositionRoot struct {
	cfg        Config
	storage    ports.Storage
	uowFactory *repository.Factory
	health     *jobs.HealthStatus
	closers    []func() error
	logger     *slog.Logger
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &CompositionRoot{
		cfg:    cfg,
		health: jobs.NewHealthStatus(),
		logger: logger,
	}

	storage, err := c.openStorage(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.Storage.Resilience.Enabled {
		rc := resilient.DefaultConfig()
		rc.Name = cfg.Storage.Backend
		rc.FailureThreshold = cfg.Storage.Resilience.FailureThreshold
		rc.OpenTimeout = cfg.Storage.Resilience.OpenTimeout
		rc.CallTimeout = cfg.Storage.Resilience.CallTimeout

		storage, err = resilient.NewStorage(storage, rc, logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.storage = storage
	c.uowFactory = repository.NewFactory(storage, logger)

	logger.InfoContext(ctx, "Storage ready",
		"backend", cfg.Storage.Backend,
		"resilient", cfg.Storage.Resilience.Enabled,
	)
	return c, nil
}

func (c *CompositionRoot) openStorage(ctx context.Context) (ports.Storage, error) {
	s := c.cfg.Storage

	switch s.Backend {
	case BackendMemory:
		return memory.NewStorage(), nil

	case BackendFile:
		return filestore.NewStorage(s.Dir)

	case BackendSQLite, BackendSQLPostgres:
		dialect := sqlstore.SQLite
		if s.Backend == BackendSQLPostgres {
			dialect = sqlstore.Postgres
		}
		store, err := sqlstore.Open(ctx, dialect, s.DSN, sqlstore.WithTable(s.Table))
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, store.Close)
		return store, nil

	case BackendPostgres:
		store, err := postgres.Open(s.DSN, postgres.WithTable(s.Table))
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, store.Close)
		return store, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		})
		c.closers = append(c.closers, client.Close)
		return redisstore.NewStorage(client,
			redisstore.WithPrefix(s.RedisPrefix),
			redisstore.WithTTL(s.RedisTTL),
		)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", s.Backend)
	}
}

func (c *CompositionRoot) Storage() ports.Storage {
	return c.storage
}

func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return c.uowFactory
}

func (c *CompositionRoot) HealthStatus() *jobs.HealthStatus {
	return c.health
}

// Migrate prepares the storage schema. Storages without one are left alone.
func (c *CompositionRoot) Migrate(ctx context.Context) error {
	m, ok := c.storage.(ports.Migrator)
	if !ok {
		c.logger.InfoContext(ctx, "Storage needs no migration", "backend", c.cfg.Storage.Backend)
		return nil
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate %s storage: %w", c.cfg.Storage.Backend, err)
	}
	c.logger.InfoContext(ctx, "Storage migrated", "backend", c.cfg.Storage.Backend)
	return nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateChangeOrderVolumeCommandHandler() commands.ChangeOrderVolumeCommandHandler {
	return commands.NewChangeOrderVolumeCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderVolumeCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateCompleteOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.health,
		c.logger,
	)
}

// CreateJobManager schedules the storage probe when the storage can be pinged.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	pinger, ok := c.storage.(ports.Pinger)
	if !ok {
		return jobs.NewJobManager()
	}
	return jobs.NewJobManager(
		jobs.NewStorageProbeJob(pinger, c.health, c.cfg.Probe.Schedule, c.cfg.Probe.Timeout, c.logger),
	)
}

// Close releases storage connections in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			closeErrs = append(closeErrs, err)
		}
	}
	c.closers = nil
	return errors.Join(closeErrs...)
}
