// Package gormstorage implements the storage.Backend interface using GORM
// with an internal unit queue drained by a background DB writer goroutine.
// The postgres and sqlite backends wrap it and only differ in how the
// connection is created.
package gormstorage

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/warnodata/extractor/internal/logging"
	"github.com/warnodata/extractor/internal/model"
	"github.com/warnodata/extractor/internal/model/convert"
	"github.com/warnodata/extractor/internal/queue"
	"github.com/warnodata/extractor/internal/storage"
	"github.com/warnodata/extractor/pkg/core"

	"gorm.io/gorm"
)

// DefaultFlushInterval is how often the writer drains the unit queue.
const DefaultFlushInterval = 500 * time.Millisecond

// DefaultBatchSize caps the units written per transaction.
const DefaultBatchSize = 200

// ErrNoRun is returned when units are saved or a run is ended before StartRun.
var ErrNoRun = errors.New("no run started")

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB            *gorm.DB
	LogManager    *logging.SlogManager
	FlushInterval time.Duration
	BatchSize     int
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps     Dependencies
	units    *queue.Queue[model.Unit]
	run      *storage.Run
	runID    atomic.Uint64
	position int

	writeMu  sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
}

var _ storage.Backend = (*Backend)(nil)

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.LogManager == nil {
		deps.LogManager = logging.NewSlogManager()
	}
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = DefaultFlushInterval
	}
	if deps.BatchSize <= 0 {
		deps.BatchSize = DefaultBatchSize
	}
	return &Backend{
		deps: deps,
	}
}

// Init creates the unit queue, runs schema migration, and starts the DB writer goroutine.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("no database configured")
	}

	if err := b.setupDB(); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}

	b.units = queue.New[model.Unit]()
	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	go b.startDBWriter()
	return nil
}

// setupDB migrates the run, unit and weapon tables.
func (b *Backend) setupDB() error {
	log := b.deps.LogManager

	log.WriteLog("setupDB", "Migrating schema", "DEBUG")
	if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		log.WriteLog("setupDB", fmt.Sprintf("Failed to migrate schema: %s", err), "ERROR")
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.WriteLog("setupDB", "Database setup complete", "DEBUG")
	return nil
}

// Close stops the DB writer goroutine and writes whatever is still queued.
func (b *Backend) Close() error {
	if b.stopChan == nil {
		return nil
	}
	close(b.stopChan)
	<-b.done
	b.stopChan = nil

	b.flush()
	if n := b.units.Len(); n > 0 {
		return fmt.Errorf("%d units could not be written", n)
	}
	return nil
}

// StartRun inserts the run row synchronously so units can reference its ID.
func (b *Backend) StartRun(run *storage.Run) error {
	if b.deps.DB == nil {
		return fmt.Errorf("no database configured")
	}

	row := convert.CoreToRun(run.StartedAt, run.Sources, run.Filter, run.Units, run.Failed, run.Duration)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert extraction run: %w", err)
	}

	run.ID = row.ID
	b.run = run
	b.position = 0
	b.runID.Store(uint64(row.ID))
	return nil
}

// SaveUnits converts units to GORM models and pushes them to the write queue.
func (b *Backend) SaveUnits(units []core.Unit) error {
	if b.run == nil {
		return ErrNoRun
	}

	rows := make([]model.Unit, len(units))
	for i, u := range units {
		rows[i] = convert.CoreToUnit(u, b.run.ID, b.position)
		b.position++
	}
	b.units.Push(rows...)
	return nil
}

// EndRun writes queued units and stores the final counts on the run row.
func (b *Backend) EndRun() error {
	if b.run == nil {
		return ErrNoRun
	}

	b.flush()
	if n := b.units.Len(); n > 0 {
		return fmt.Errorf("%d units could not be written", n)
	}

	updates := map[string]any{
		"unit_count":   b.run.Units,
		"failed_count": b.run.Failed,
		"duration_ms":  float64(b.run.Duration.Microseconds()) / 1000,
	}
	if err := b.deps.DB.Model(&model.ExtractionRun{}).Where("id = ?", b.run.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update extraction run: %w", err)
	}

	b.run = nil
	b.runID.Store(0)
	return nil
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// flush drains the unit queue once. Writes are serialized so a flush that
// returns has seen every unit queued before it was called.
func (b *Backend) flush() {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	log := b.deps.LogManager.WriteLog
	writeQueue(b.deps.DB, b.units, b.deps.BatchSize, "units", log, func(items []model.Unit) {
		log(":DB:WRITER:", fmt.Sprintf("Wrote %d units", len(items)), "DEBUG")
	})
}

// writeQueue writes all items from a queue to the database, one transaction
// per batch. A failed batch goes back to the head of the queue and stops the
// drain.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], batchSize int, name string, log func(string, string, string), onSuccess func([]T)) {
	for !q.Empty() {
		items := q.Take(batchSize)

		tx := db.Begin()
		if err := tx.Create(&items).Error; err != nil {
			log(":DB:WRITER:", fmt.Sprintf("Error creating %s: %v", name, err), "ERROR")
			tx.Rollback()
			q.Requeue(items...)
			return
		}
		if err := tx.Commit().Error; err != nil {
			log(":DB:WRITER:", fmt.Sprintf("Error committing %s: %v", name, err), "ERROR")
			q.Requeue(items...)
			return
		}

		if onSuccess != nil {
			onSuccess(items)
		}
	}
}

// startDBWriter periodically drains the unit queue into the DB until Close.
func (b *Backend) startDBWriter() {
	defer close(b.done)

	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if b.runID.Load() == 0 {
				continue
			}
			b.flush()
		}
	}
}
