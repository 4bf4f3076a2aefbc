// internal/storage/memory/memory.go
package memory

import (
	"errors"
	"sync"

	"github.com/warnodata/extractor/internal/config"
	"github.com/warnodata/extractor/internal/storage"
	"github.com/warnodata/extractor/pkg/core"
)

// ErrNoRun is returned when units are saved or a run is ended before StartRun.
var ErrNoRun = errors.New("no run started")

// Backend keeps a run's units in memory and exports them to JSON on EndRun
type Backend struct {
	cfg   config.MemoryConfig
	run   *storage.Run
	units []core.Unit

	lastExportPath string
	mu             sync.Mutex
}

var _ storage.Backend = (*Backend)(nil)
var _ storage.Exportable = (*Backend)(nil)

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartRun begins collecting a new run, discarding anything not yet exported.
func (b *Backend) StartRun(run *storage.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.run = run
	b.units = make([]core.Unit, 0, run.Units)
	return nil
}

// SaveUnits appends units to the current run.
func (b *Backend) SaveUnits(units []core.Unit) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return ErrNoRun
	}
	b.units = append(b.units, units...)
	return nil
}

// EndRun writes the collected units to the output directory.
func (b *Backend) EndRun() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return ErrNoRun
	}
	err := b.exportJSON()
	b.run = nil
	b.units = nil
	return err
}

// GetExportedFilePath returns the file written by the last EndRun.
func (b *Backend) GetExportedFilePath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastExportPath
}
