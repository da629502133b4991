// Package postgres provides the GORM-based snapshot storage. Each aggregate
// is one row of the snapshot table (aggregate_snapshots unless WithTable
// says otherwise) with its state in a JSONB column.
//
// Usage:
//
//	storage, err := postgres.Open(dsn)
//	if err != nil {
//	    return err
//	}
//	if err := storage.Migrate(ctx); err != nil {
//	    return err
//	}
//	factory := repository.NewFactory(storage, logger)
//
// Transactions:
//
// Store and Restore run on the connection the storage was built with. To
// commit several aggregates atomically, run the unit of work inside
// Transaction; every Store then shares one database transaction.
//
//	err := storage.Transaction(ctx, func(tx *postgres.GormStorage) error {
//	    repo := repository.New(tx, logger)
//	    if err := repo.Add(first); err != nil {
//	        return err
//	    }
//	    if err := repo.Add(second); err != nil {
//	        return err
//	    }
//	    return repo.Commit(ctx)
//	})
package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"bondi/internal/adapters/out/snapshot"
	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var (
	_ ports.Storage  = (*GormStorage)(nil)
	_ ports.Pinger   = (*GormStorage)(nil)
	_ ports.Migrator = (*GormStorage)(nil)
)

// DefaultTable is used when no table name is configured.
const DefaultTable = "aggregate_snapshots"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type GormStorage struct {
	db    *gorm.DB
	table string
}

type Option func(*GormStorage)

// WithTable overrides DefaultTable.
func WithTable(table string) Option {
	return func(s *GormStorage) {
		s.table = table
	}
}

func NewGormStorage(db *gorm.DB, opts ...Option) (*GormStorage, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}

	s := &GormStorage{db: db, table: DefaultTable}
	for _, opt := range opts {
		opt(s)
	}

	if !tableName.MatchString(s.table) {
		return nil, errs.NewValueIsInvalidErrorWithCause("table", fmt.Errorf("%q is not a valid table name", s.table))
	}
	return s, nil
}

// Table returns the snapshot table name.
func (s *GormStorage) Table() string {
	return s.table
}

// Open connects to PostgreSQL with GORM's logger silenced; failures are
// reported through the returned errors instead.
func Open(dsn string, opts ...Option) (*GormStorage, error) {
	if dsn == "" {
		return nil, errs.NewValueIsRequiredError("dsn")
	}

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	s, err := NewGormStorage(db, opts...)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return s, nil
}

func (s *GormStorage) Store(ctx context.Context, agg aggregate.Aggregate) error {
	rec, err := snapshot.Encode(agg)
	if err != nil {
		return err
	}

	dto := fromRecord(rec)
	err = s.db.WithContext(ctx).
		Table(s.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "version", "data", "stored_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return errs.NewStorageFailureErrorWithCause("store", rec.ID, err)
	}
	return nil
}

func (s *GormStorage) Restore(ctx context.Context, agg aggregate.Aggregate) error {
	id := agg.Root().ID()

	var dto SnapshotDTO
	if err := s.db.WithContext(ctx).Table(s.table).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundErrorWithCause("aggregate", id, err)
		}
		return errs.NewStorageFailureErrorWithCause("restore", id, err)
	}

	return snapshot.Decode(toRecord(dto), agg)
}

// Migrate creates or updates the snapshot table.
func (s *GormStorage) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Table(s.table).AutoMigrate(&SnapshotDTO{}); err != nil {
		return errs.NewStorageFailureErrorWithCause("migrate", s.table, err)
	}
	return nil
}

func (s *GormStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errs.NewStorageFailureErrorWithCause("ping", "postgres", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewStorageFailureErrorWithCause("ping", "postgres", err)
	}
	return nil
}

// Transaction runs fn with a storage bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *GormStorage) Transaction(ctx context.Context, fn func(tx *GormStorage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStorage{db: tx, table: s.table})
	})
}

func (s *GormStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
