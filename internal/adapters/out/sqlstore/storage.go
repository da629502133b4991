// Package sqlstore persists aggregate snapshots in a single SQL table through
// database/sql. SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq) are
// supported; Store is an upsert on the aggregate identifier.
//
// Example:
//
//	storage, err := sqlstore.Open(ctx, sqlstore.SQLite, "file:bondi.db")
//	if err != nil {
//	    return err
//	}
//	defer storage.Close()
//	if err := storage.Migrate(ctx); err != nil {
//	    return err
//	}
//	repo := repository.New(storage, logger)
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"bondi/internal/adapters/out/snapshot"
	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DefaultTable is used when no table name is configured.
const DefaultTable = "aggregate_snapshots"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var (
	_ ports.Storage  = (*Storage)(nil)
	_ ports.Pinger   = (*Storage)(nil)
	_ ports.Migrator = (*Storage)(nil)
)

type Storage struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

type Option func(*Storage)

// WithTable overrides DefaultTable.
func WithTable(table string) Option {
	return func(s *Storage) {
		s.table = table
	}
}

// NewStorage wraps an open database. The caller owns db.
func NewStorage(db *sql.DB, dialect Dialect, opts ...Option) (*Storage, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	if dialect.Driver == "" {
		return nil, errs.NewValueIsRequiredError("dialect")
	}

	s := &Storage{db: db, dialect: dialect, table: DefaultTable}
	for _, opt := range opts {
		opt(s)
	}

	if !tableName.MatchString(s.table) {
		return nil, errs.NewValueIsInvalidErrorWithCause("table", fmt.Errorf("%q is not a valid table name", s.table))
	}
	return s, nil
}

// Open connects with the dialect's driver and verifies the connection.
func Open(ctx context.Context, dialect Dialect, dsn string, opts ...Option) (*Storage, error) {
	if dsn == "" {
		return nil, errs.NewValueIsRequiredError("dsn")
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect.Name, err)
	}

	if dialect.Driver == SQLite.Driver {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect.Name, err)
	}

	s, err := NewStorage(db, dialect, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) Store(ctx context.Context, agg aggregate.Aggregate) error {
	rec, err := snapshot.Encode(agg)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.dialect.upsert(s.table),
		rec.ID, rec.Type, rec.Version, string(rec.Data), rec.StoredAt.UnixMilli())
	if err != nil {
		return errs.NewStorageFailureErrorWithCause("store", rec.ID, err)
	}
	return nil
}

func (s *Storage) Restore(ctx context.Context, agg aggregate.Aggregate) error {
	id := agg.Root().ID()

	var (
		rec      snapshot.Record
		data     []byte
		storedAt int64
	)
	err := s.db.QueryRowContext(ctx, s.dialect.selectByID(s.table), id).
		Scan(&rec.ID, &rec.Type, &rec.Version, &data, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NewObjectNotFoundErrorWithCause("aggregate", id, err)
	}
	if err != nil {
		return errs.NewStorageFailureErrorWithCause("restore", id, err)
	}

	rec.Data = data
	rec.StoredAt = time.UnixMilli(storedAt).UTC()
	return snapshot.Decode(rec, agg)
}

// Migrate creates the snapshot table when it does not exist.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.createTable(s.table)); err != nil {
		return errs.NewStorageFailureErrorWithCause("migrate", s.table, err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errs.NewStorageFailureErrorWithCause("ping", s.dialect.Name, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
