package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/warnodata/extractor/internal/config"
	"github.com/warnodata/extractor/internal/filter"
	"github.com/warnodata/extractor/internal/influx"
	"github.com/warnodata/extractor/internal/storage"
	"github.com/warnodata/extractor/internal/worker"
	"github.com/warnodata/extractor/pkg/core"
)

const meterName = "github.com/warnodata/extractor/cmd/ndfextract"

// runExtract loads the inputs, extracts every unit, filters and stores the result.
func runExtract(cmd *cobra.Command, patterns []string) error {
	sess, err := newSession("extract")
	if err != nil {
		return err
	}
	defer sess.Close()
	logger := sess.Logger

	unitFilter, err := filter.Compile(config.GetString("filter"))
	if err != nil {
		return err
	}

	files, err := expandInputs(patterns)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(files, logger)
	if err != nil {
		logger.Error("Failed to load descriptors", "error", err)
		return err
	}
	p, err := buildParser(catalog, logger)
	if err != nil {
		return err
	}

	manager, err := worker.NewManager(worker.Dependencies{
		Extractor: p,
		Logger:    logger,
		Meter:     sess.OTel.Meter(meterName),
		Workers:   config.GetWorkerConfig().Workers,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := manager.Run(ctx, catalog.Units)
	if err != nil {
		return fmt.Errorf("extraction interrupted: %w", err)
	}

	units, err := unitFilter.Apply(result.Units)
	if err != nil {
		return err
	}
	if unitFilter.String() != "" {
		logger.Info("Filter applied", "filter", unitFilter.String(), "kept", len(units), "extracted", len(result.Units))
	}

	run := &storage.Run{
		StartedAt: sess.Start,
		Sources:   files,
		Filter:    unitFilter.String(),
		Units:     len(units),
		Failed:    len(result.Failures),
		Duration:  result.Duration,
	}

	storageCfg := config.GetStorageConfig()
	exported, err := storeRun(storageCfg, sess, run, units)
	if err != nil {
		logger.Error("Failed to store units", "error", err)
		return err
	}

	recordRun(ctx, sess, *run, storageCfg.Type)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Extracted %d units (%d failed) from %d files in %s\n",
		len(result.Units), len(result.Failures), len(files), result.Duration.Round(time.Millisecond))
	if unitFilter.String() != "" {
		fmt.Fprintf(out, "Kept %d units matching %s\n", len(units), unitFilter.String())
	}
	if exported != "" {
		fmt.Fprintf(out, "Wrote %s\n", exported)
	}
	return nil
}

// storeRun writes the run through a freshly created backend and returns the
// exported file, if the backend produces one.
func storeRun(storageCfg config.StorageConfig, sess *session, run *storage.Run, units []core.Unit) (string, error) {
	backend, err := createStorageBackend(storageCfg, sess)
	if err != nil {
		return "", err
	}
	if err := backend.Init(); err != nil {
		return "", fmt.Errorf("failed to initialize storage backend: %w", err)
	}

	err = func() error {
		if err := backend.StartRun(run); err != nil {
			return err
		}
		if err := backend.SaveUnits(units); err != nil {
			return err
		}
		return backend.EndRun()
	}()
	if cerr := backend.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}

	if e, ok := backend.(storage.Exportable); ok {
		return e.GetExportedFilePath(), nil
	}
	return "", nil
}

// recordRun sends the run summary to InfluxDB when enabled. Failures are
// logged, never fatal.
func recordRun(ctx context.Context, sess *session, run storage.Run, storageType string) {
	m := influx.NewManager(config.GetInfluxConfig(), sess.DBLogger(), sess.InfluxBackupPath())
	if err := m.Connect(ctx); err != nil {
		if !errors.Is(err, influx.ErrDisabled) {
			sess.Logger.Warn("InfluxDB unavailable", "error", err)
		}
		return
	}
	defer m.Close()

	if err := m.WritePoint(influx.RunPoint(run, storageType)); err != nil {
		sess.Logger.Warn("Failed to record run in InfluxDB", "error", err)
	}
}

// runInspect extracts a single unit and prints it as indented JSON.
func runInspect(cmd *cobra.Command, descriptor string, patterns []string) error {
	sess, err := newSession("inspect")
	if err != nil {
		return err
	}
	defer sess.Close()

	files, err := expandInputs(patterns)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(files, sess.Logger)
	if err != nil {
		return err
	}
	p, err := buildParser(catalog, sess.Logger)
	if err != nil {
		return err
	}

	for _, node := range catalog.Units {
		if node.Name != descriptor {
			continue
		}
		unit, err := p.ParseUnit(node)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(unit)
	}
	return fmt.Errorf("unit descriptor %q not found in %d files", descriptor, len(files))
}
