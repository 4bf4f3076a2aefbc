package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/warnodata/extractor/internal/config"
	"github.com/warnodata/extractor/internal/logging"
	"github.com/warnodata/extractor/internal/otel"
)

// session holds the per-invocation logging and metrics setup.
type session struct {
	Start  time.Time
	RunID  string
	Logs   *logging.SlogManager
	Logger *slog.Logger
	OTel   *otel.Provider

	logsDir string
	logFile io.Writer
	closers []io.Closer
}

// newSession sets up logging to a file under logsDir (or the console when
// logsDir is empty) and, when enabled, OTel metrics exported next to it.
func newSession(command string) (*session, error) {
	s := &session{
		Start:   time.Now(),
		Logs:    logging.NewSlogManager(),
		logsDir: config.GetString("logsDir"),
	}
	s.RunID = s.Start.UTC().Format(logging.RunStampLayout)

	if s.logsDir != "" {
		f, err := s.create(logging.LogFilePath(s.logsDir, command, s.Start))
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		s.logFile = f
	}

	runID := s.RunID
	s.Logs.Setup(s.logFile, config.GetString("logLevel"), func() []slog.Attr {
		return []slog.Attr{slog.String("run", runID)}
	})
	s.Logger = s.Logs.Logger()

	otelCfg := config.GetOTelConfig()
	providerCfg := otel.Config{
		Enabled:        otelCfg.Enabled,
		ServiceName:    otelCfg.ServiceName,
		ExportInterval: otelCfg.ExportInterval,
	}
	if otelCfg.Enabled {
		if s.logsDir == "" {
			providerCfg.MetricWriter = os.Stderr
		} else {
			f, err := s.create(logging.RunFilePath(s.logsDir, command, s.Start, "metrics.json"))
			if err != nil {
				s.Close()
				return nil, fmt.Errorf("failed to create metrics file: %w", err)
			}
			providerCfg.MetricWriter = f
		}
	}

	provider, err := otel.New(providerCfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.OTel = provider

	s.Logger.Info("Session started", "command", command, "version", Version)
	return s, nil
}

// create opens a file in the session's logs directory, closed with the session.
func (s *session) create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, f)
	return f, nil
}

// DBLogger returns the zerolog logger the database layer writes to.
func (s *session) DBLogger() zerolog.Logger {
	w := s.logFile
	if w == nil {
		w = os.Stderr
	}
	return logging.NewZerolog(w, s.Logs.Level(), "database")
}

// InfluxBackupPath is where run summaries go when InfluxDB is unreachable.
func (s *session) InfluxBackupPath() string {
	dir := s.logsDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("influx_backup.%s.log.gz", s.Start.Format(logging.RunStampLayout)))
}

// Close flushes metrics and closes every file the session opened.
func (s *session) Close() {
	if s.OTel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.OTel.Shutdown(ctx); err != nil && s.Logger != nil {
			s.Logger.Warn("Failed to shut down metrics", "error", err)
		}
		cancel()
		s.OTel = nil
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
	s.closers = nil
}
