// ABOUTME: Debug logger for the TUI that writes structured lines to a file
// ABOUTME: Keeps diagnostics off the terminal while the calculator owns the screen

package debuglog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// EnvPath names the environment variable holding the log file path
const EnvPath = "LN2_SIZER_DEBUG_LOG"

var (
	logFile *os.File
	logger  *slog.Logger
	mu      sync.Mutex
)

// InitFromEnv opens the log file named by LN2_SIZER_DEBUG_LOG, if set
func InitFromEnv() error {
	return Init(os.Getenv(EnvPath))
}

// Init opens path for appending. An empty path disables logging.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	logFile = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = nil
}

// Enabled reports whether a log file is open
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil
}

func write(level slog.Level, msg string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	logger.Log(context.Background(), level, msg, args...)
}

// Log writes a debug message
func Log(format string, args ...any) {
	write(slog.LevelDebug, fmt.Sprintf(format, args...))
}

// Error logs an error with context
func Error(where string, err error) {
	if err == nil {
		return
	}
	write(slog.LevelError, where, "error", err)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	write(slog.LevelWarn, fmt.Sprintf(format, args...))
}
