package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogFilePath(t *testing.T) {
	runStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name        string
		logsDir     string
		commandName string
		want        string
	}{
		{
			name:        "basic path",
			logsDir:     "logs",
			commandName: "ndfextract",
			want:        filepath.Join("logs", "ndfextract.20260212_213836.log"),
		},
		{
			name:        "relative path with dot",
			logsDir:     "./logs",
			commandName: "ndfextract",
			want:        filepath.Join(".", "logs", "ndfextract.20260212_213836.log"),
		},
		{
			name:        "absolute path",
			logsDir:     filepath.Join("/var", "log", "warno"),
			commandName: "ndfextract",
			want:        filepath.Join("/var", "log", "warno", "ndfextract.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.commandName, runStart)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunFilePath(t *testing.T) {
	runStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	assert.Equal(t,
		filepath.Join("logs", "extract.20260212_213836.metrics.json"),
		RunFilePath("logs", "extract", runStart, "metrics.json"))
	assert.Equal(t,
		LogFilePath("logs", "extract", runStart),
		RunFilePath("logs", "extract", runStart, "log"))
}
