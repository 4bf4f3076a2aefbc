// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/warnodata/extractor/pkg/core"
)

// UnitExport is the root JSON structure of an exported run
type UnitExport struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Sources     []string    `json:"sources"`
	Filter      string      `json:"filter,omitempty"`
	UnitCount   int         `json:"unitCount"`
	FailedCount int         `json:"failedCount"`
	Units       []core.Unit `json:"units"`
}

// exportFileName names the export after the run start.
func exportFileName(start time.Time, compress bool) string {
	name := fmt.Sprintf("units_%s.json", start.Format("20060102_150405"))
	if compress {
		name += ".gz"
	}
	return name
}

// exportJSON writes the run to a JSON file, gzipped when configured.
func (b *Backend) exportJSON() error {
	export := b.buildExport()
	outputPath := filepath.Join(b.cfg.OutputDir, exportFileName(b.run.StartedAt, b.cfg.CompressOutput))

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	write := writeJSON
	if b.cfg.CompressOutput {
		write = writeGzipJSON
	}
	if err := write(outputPath, export); err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() UnitExport {
	sources := b.run.Sources
	if sources == nil {
		sources = []string{}
	}
	units := b.units
	if units == nil {
		units = []core.Unit{}
	}
	return UnitExport{
		GeneratedAt: b.run.StartedAt.UTC(),
		Sources:     sources,
		Filter:      b.run.Filter,
		UnitCount:   len(units),
		FailedCount: b.run.Failed,
		Units:       units,
	}
}

func writeJSON(path string, data UnitExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data UnitExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	encoder := json.NewEncoder(gzWriter)
	if err := encoder.Encode(data); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return gzWriter.Close()
}
