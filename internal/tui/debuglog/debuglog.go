// ABOUTME: Routes slog output to a debug log file while the TUI owns the terminal
// ABOUTME: Avoids interfering with terminal display while capturing errors

package debuglog

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/uiopaws/pawsctl/internal/logger"
)

var (
	logFile *os.File
	mu      sync.Mutex
)

// FileName is the log file created inside the config directory.
const FileName = "debug.log"

// Init points the default slog logger at <configDir>/debug.log.
// If configDir is empty, log output is discarded.
func Init(configDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if configDir == "" {
		logger.Init(level, "text", io.Discard)
		return nil
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0700); err != nil {
		logger.Init(level, "text", io.Discard)
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		logger.Init(level, "text", io.Discard)
		return err
	}

	logFile = f
	logger.Init(level, "text", f)
	return nil
}

// Close closes the log file and sends further output to stderr.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		closeLocked()
		logger.Init("warn", "text", os.Stderr)
	}
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
