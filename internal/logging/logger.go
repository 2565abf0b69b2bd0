// Package logging provides config-driven categorized logging for
// structcheck. Logs are written to <data-dir>/logs/structcheck.log; nothing
// is written before Init or when debug mode is off and the level is raised.
// Categories are zap named loggers (session, store, flow, content, ui) so
// one grep isolates one subsystem.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field constructors re-exported so callers only import this package.
var (
	String   = zap.String
	Int      = zap.Int
	Float64  = zap.Float64
	Bool     = zap.Bool
	Duration = zap.Duration
	Time     = zap.Time
	Err      = zap.Error
	Any      = zap.Any
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init builds the file-backed root logger under dir. Debug mode lowers the
// level to Debug; otherwise Info. Safe to call more than once; later calls
// replace the root.
func Init(dir string, debug bool) error {
	logsDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(logsDir, "structcheck.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mu.Lock()
	root = logger
	mu.Unlock()
	return nil
}

// InitConsole routes logs to stderr instead of a file. Used by one-shot
// operator commands where a log file would be noise.
func InitConsole(debug bool) error {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize console logger: %w", err)
	}
	mu.Lock()
	root = logger
	mu.Unlock()
	return nil
}

// Named returns the category logger. Before Init it is a no-op logger, so
// packages may log unconditionally.
func Named(category string) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(category)
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}
