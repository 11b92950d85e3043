// Package logging configures the process logger. Diagnostics go to
// stderr so stdout stays reserved for command output.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New creates the process logger at the given level. Unknown level
// strings fall back to warn, which keeps normal command runs quiet.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           parseLevel(level),
	})
	return logger
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}
