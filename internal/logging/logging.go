package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// RunStampLayout names per-run files so they sort by start time.
const RunStampLayout = "20060102_150405"

// RunFilePath builds <logsDir>/<command>.<stamp>.<suffix> for files a run
// writes next to its log.
func RunFilePath(logsDir, commandName string, runStart time.Time, suffix string) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.%s", commandName, runStart.Format(RunStampLayout), suffix),
	)
}

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, commandName string, runStart time.Time) string {
	return RunFilePath(logsDir, commandName, runStart, "log")
}
