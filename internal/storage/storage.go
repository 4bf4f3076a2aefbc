// internal/storage/storage.go
package storage

import (
	"time"

	"github.com/warnodata/extractor/pkg/core"
)

// Run describes the extraction a batch of units came from.
// Backends that persist runs assign ID in StartRun.
type Run struct {
	ID        uint
	StartedAt time.Time
	Sources   []string
	Filter    string
	Units     int
	Failed    int
	Duration  time.Duration
}

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Run management
	StartRun(run *Run) error
	EndRun() error

	// SaveUnits stores units in the given order.
	SaveUnits(units []core.Unit) error
}

// Exportable is an optional interface for storage backends that produce a
// single output file.
type Exportable interface {
	GetExportedFilePath() string
}
