// Package logger builds the leveled logger shared by the commands and the
// frame driver.
package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const Prefix = "binstar"

// New returns a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: level <= log.DebugLevel,
	})
}

// ParseLevel accepts debug, info, warn, error and fatal, case-insensitively.
func ParseLevel(s string) (log.Level, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel+1)
}
