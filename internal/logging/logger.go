// Package logging builds the process-wide logger. Human-readable text on a
// terminal, JSON when stderr is piped or redirected.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// New returns a logger writing to stderr. verbose lowers the level to debug.
func New(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}
