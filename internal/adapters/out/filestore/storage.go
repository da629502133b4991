// Package filestore persists one JSON snapshot file per aggregate under a
// directory. Writes go through a temporary file and a rename, so a reader
// never observes a partially written snapshot.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"bondi/internal/adapters/out/snapshot"
	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/core/ports"
	"bondi/internal/pkg/errs"
)

const fileExt = ".json"

var (
	_ ports.Storage  = (*Storage)(nil)
	_ ports.Pinger   = (*Storage)(nil)
	_ ports.Migrator = (*Storage)(nil)
)

type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if dir == "" {
		return nil, errs.NewValueIsRequiredError("dir")
	}
	return &Storage{dir: dir}, nil
}

// Path returns the snapshot file for id. Identifiers are path-escaped, so
// any string is a valid identifier.
func (s *Storage) Path(id string) string {
	return filepath.Join(s.dir, url.PathEscape(id)+fileExt)
}

func (s *Storage) Store(ctx context.Context, agg aggregate.Aggregate) error {
	id := agg.Root().ID()
	if err := ctx.Err(); err != nil {
		return errs.NewStorageFailureErrorWithCause("store", id, err)
	}

	data, err := snapshot.Marshal(agg)
	if err != nil {
		return err
	}

	if err := s.writeFile(s.Path(id), data); err != nil {
		return errs.NewStorageFailureErrorWithCause("store", id, err)
	}
	return nil
}

func (s *Storage) Restore(ctx context.Context, agg aggregate.Aggregate) error {
	id := agg.Root().ID()
	if err := ctx.Err(); err != nil {
		return errs.NewStorageFailureErrorWithCause("restore", id, err)
	}

	data, err := os.ReadFile(s.Path(id))
	if errors.Is(err, os.ErrNotExist) {
		return errs.NewObjectNotFoundErrorWithCause("aggregate", id, err)
	}
	if err != nil {
		return errs.NewStorageFailureErrorWithCause("restore", id, err)
	}

	return snapshot.Unmarshal(data, agg)
}

// Migrate creates the snapshot directory.
func (s *Storage) Migrate(context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errs.NewStorageFailureErrorWithCause("migrate", s.dir, err)
	}
	return nil
}

// Ping checks that the snapshot directory exists.
func (s *Storage) Ping(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return errs.NewStorageFailureErrorWithCause("ping", s.dir, err)
	}
	if !info.IsDir() {
		return errs.NewStorageFailureErrorWithCause("ping", s.dir, fmt.Errorf("%s is not a directory", s.dir))
	}
	return nil
}

func (s *Storage) writeFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
