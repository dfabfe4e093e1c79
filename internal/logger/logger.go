// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to w, or a human-readable console logger when
// console is set. Debug lowers the level from info to debug.
func New(w io.Writer, debug, console bool) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "bookreview").
		Logger()
}
