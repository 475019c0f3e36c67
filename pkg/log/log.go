// Package log wraps zap behind a small package-level API. All output goes
// to stderr: stdout belongs to the audit report and must stay clean enough
// to pipe into other tooling.
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the verbosity of logging.
type LogLevel string

const (
	// LevelDebug enables all logs.
	LevelDebug LogLevel = "debug"
	// LevelInfo enables info, warning, and error logs.
	LevelInfo LogLevel = "info"
	// LevelProgress enables progress, warning, and error logs (default).
	LevelProgress LogLevel = "progress"
	// LevelWarn enables only warning and error logs.
	LevelWarn LogLevel = "warn"
	// LevelError enables only error logs.
	LevelError LogLevel = "error"
)

var (
	globalLogger *zap.SugaredLogger
	globalMutex  sync.RWMutex
)

// Config holds logger configuration.
type Config struct {
	Level  LogLevel
	Format string // "console" or "json"
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelProgress,
		Format: "console",
	}
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) error {
	logger := newLogger(cfg)

	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalLogger = logger
	return nil
}

// Get returns the global logger, initializing it with defaults on first use.
func Get() *zap.SugaredLogger {
	globalMutex.RLock()
	logger := globalLogger
	globalMutex.RUnlock()

	if logger != nil {
		return logger
	}

	// Build outside the lock; Init also takes it.
	candidate := newLogger(DefaultConfig())

	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalLogger != nil {
		return globalLogger
	}
	globalLogger = candidate
	return globalLogger
}

func mapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo, LevelProgress:
		// Progress shares zap's info level; the distinction is which
		// package helpers callers reach for, not a separate severity.
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func newLogger(cfg Config) *zap.SugaredLogger {
	encCfg := encoderConfig()

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), mapLevel(cfg.Level))
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger.Sugar()
}

// Debug logs a debug message.
func Debug(msg string, args ...interface{}) {
	Get().Debugw(msg, args...)
}

// Debugf logs a formatted debug message.
func Debugf(template string, args ...interface{}) {
	Get().Debugf(template, args...)
}

// Info logs an info message.
func Info(msg string, args ...interface{}) {
	Get().Infow(msg, args...)
}

// Infof logs a formatted info message.
func Infof(template string, args ...interface{}) {
	Get().Infof(template, args...)
}

// Progress logs a user-facing progress message.
func Progress(msg string, args ...interface{}) {
	Get().Infow(msg, args...)
}

// Progressf logs a formatted progress message.
func Progressf(template string, args ...interface{}) {
	Get().Infof(template, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...interface{}) {
	Get().Warnw(msg, args...)
}

// Warnf logs a formatted warning message.
func Warnf(template string, args ...interface{}) {
	Get().Warnf(template, args...)
}

// Error logs an error message.
func Error(msg string, args ...interface{}) {
	Get().Errorw(msg, args...)
}

// Errorf logs a formatted error message.
func Errorf(template string, args ...interface{}) {
	Get().Errorf(template, args...)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, args ...interface{}) {
	Get().Fatalw(msg, args...)
}

// Fatalf logs a formatted fatal message and exits.
func Fatalf(template string, args ...interface{}) {
	Get().Fatalf(template, args...)
}

// With returns a logger with additional fields.
func With(args ...interface{}) *zap.SugaredLogger {
	return Get().With(args...)
}

// Sync flushes any buffered log entries.
func Sync() error {
	globalMutex.RLock()
	logger := globalLogger
	globalMutex.RUnlock()

	if logger != nil {
		return logger.Sync()
	}
	return nil
}

// Reset clears the global logger. Mainly for tests.
func Reset() {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
	globalLogger = nil
}
