// Package logging wraps charmbracelet/log for railgraph's debug path.
// A bubbletea program owns the terminal, so nothing may write to
// stderr while it runs; logging is opt-in and always goes to a file.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	logger     *log.Logger
	loggerOnce sync.Once
	enabled    bool
)

// Init opens path and routes subsequent Get() calls there at level.
// Calling Init more than once is a no-op; pass an empty path to leave
// logging disabled, which is the default.
func Init(path string, level string) error {
	var initErr error
	loggerOnce.Do(func() {
		if path == "" {
			return
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			initErr = fmt.Errorf("logging: open %s: %w", path, err)
			return
		}

		logger = log.NewWithOptions(f, log.Options{
			Level:           parseLevel(level),
			Prefix:          "railgraph",
			ReportTimestamp: true,
		})
		enabled = true
	})
	return initErr
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Get returns the active logger, or a discarding one if Init was
// never called or was called with an empty path.
func Get() *log.Logger {
	if !enabled || logger == nil {
		return log.NewWithOptions(discard{}, log.Options{})
	}
	return logger
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
