package logging

import (
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// NewZerolog builds the zerolog logger used by the database layer. It writes
// JSON lines to w, tagged with component, at the level the slog setup uses.
func NewZerolog(w io.Writer, level slog.Level, component string) zerolog.Logger {
	return zerolog.New(w).
		Level(zerologLevel(level)).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level <= slog.LevelDebug:
		return zerolog.DebugLevel
	case level <= slog.LevelInfo:
		return zerolog.InfoLevel
	case level <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
