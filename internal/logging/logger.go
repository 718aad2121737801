// Package logging provides category-scoped structured logging for planpilot.
// Each subsystem logs through its own category so individual pipelines can be
// silenced or turned up without touching the others. Everything is backed by
// a single zap core configured at startup.
package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies a logging subsystem.
type Category string

const (
	CategoryBoot         Category = "boot"         // Startup and wiring
	CategoryIntent       Category = "intent"       // Intent classification
	CategoryPlanner      Category = "planner"      // Plan construction
	CategoryMemory       Category = "memory"       // Context memory
	CategoryStore        Category = "store"        // SQLite persistence
	CategoryOrchestrator Category = "orchestrator" // Pipeline driving
	CategoryTools        Category = "tools"        // Tool dispatch
	CategoryLLM          Category = "llm"          // LLM collaborator calls
	CategoryRL           Category = "rl"           // RL recommendations and episodes
)

// Config controls global logging behavior.
type Config struct {
	Level      string          `yaml:"level"`       // debug, info, warn, error
	JSONFormat bool            `yaml:"json_format"` // JSON output instead of console
	Categories map[string]bool `yaml:"categories"`  // per-category enable; empty means all on
}

// Logger is a category-scoped printf-style logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
	enabled  bool
}

var (
	mu      sync.RWMutex
	base    *zap.Logger
	cfg     Config
	loggers = make(map[Category]*Logger)
)

// Initialize builds the shared zap core from config. Safe to call more than
// once; later calls replace the core and invalidate cached category loggers.
func Initialize(c Config) error {
	level := zapcore.InfoLevel
	switch c.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info", "":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		return fmt.Errorf("unknown log level %q", c.Level)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if c.JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)

	mu.Lock()
	defer mu.Unlock()
	base = zap.New(core)
	cfg = c
	loggers = make(map[Category]*Logger)
	return nil
}

// Get returns the logger for a category, creating it on first use.
// Works before Initialize: falls back to a no-op core so library code
// never has to nil-check.
func Get(cat Category) *Logger {
	mu.RLock()
	if l, ok := loggers[cat]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}
	b := base
	if b == nil {
		b = zap.NewNop()
	}
	l := &Logger{
		category: cat,
		sugar:    b.Sugar().With("cat", string(cat)),
		enabled:  categoryEnabled(cat),
	}
	loggers[cat] = l
	return l
}

// categoryEnabled must be called with mu held.
func categoryEnabled(cat Category) bool {
	if len(cfg.Categories) == 0 {
		return true
	}
	enabled, ok := cfg.Categories[string(cat)]
	if !ok {
		return true
	}
	return enabled
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.enabled {
		l.sugar.Debugf(format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.enabled {
		l.sugar.Infof(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.enabled {
		l.sugar.Warnf(format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	if l.enabled {
		l.sugar.Errorf(format, args...)
	}
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if base != nil {
		_ = base.Sync()
	}
}
