package repository

import (
	"log/slog"

	"bondi/internal/core/ports"
)

// Factory hands out a fresh Repository per business transaction so that
// concurrent transactions never share an identity map.
type Factory struct {
	storage ports.Storage
	logger  *slog.Logger
}

var _ ports.UnitOfWorkFactory = (*Factory)(nil)

// NewFactory creates a factory whose repositories all use storage.
func NewFactory(storage ports.Storage, logger *slog.Logger) *Factory {
	return &Factory{storage: storage, logger: logger}
}

// Create returns a new, empty *Repository.
func (f *Factory) Create() ports.UnitOfWork {
	return New(f.storage, f.logger)
}
