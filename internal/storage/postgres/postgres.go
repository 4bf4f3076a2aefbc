// Package postgres implements the storage.Backend interface on a PostgreSQL
// connection built from the db.* settings. Writes go through the GORM backend.
package postgres

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/warnodata/extractor/internal/database"
	"github.com/warnodata/extractor/internal/logging"
	"github.com/warnodata/extractor/internal/storage"
	gormstorage "github.com/warnodata/extractor/internal/storage/gorm"
)

// Dependencies holds all dependencies for the PostgreSQL storage backend.
type Dependencies struct {
	LogManager *logging.SlogManager
	DBLogger   zerolog.Logger
}

// Backend connects to PostgreSQL on Init and delegates writes to the GORM backend.
type Backend struct {
	*gormstorage.Backend
	deps    Dependencies
	manager *database.Manager
}

var _ storage.Backend = (*Backend)(nil)

// New creates a new PostgreSQL storage backend. No connection is made until Init.
func New(deps Dependencies) *Backend {
	return &Backend{
		deps:    deps,
		manager: database.NewManager(deps.DBLogger),
	}
}

// Init connects, migrates the schema and starts the DB writer.
func (b *Backend) Init() error {
	if err := b.manager.Connect(); err != nil {
		return err
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:         b.manager.DB,
		LogManager: b.deps.LogManager,
	})
	if err := b.Backend.Init(); err != nil {
		_ = b.manager.Close()
		return fmt.Errorf("failed to init postgres storage: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the connection.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	err := b.Backend.Close()
	if cerr := b.manager.Close(); err == nil {
		err = cerr
	}
	return err
}
