package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	logger *slog.Logger
	mu     sync.RWMutex
)

// ParseLogLevel converts a string log level to a slog.Level.
// Valid values are "debug", "info", "warn", "error".
// If an invalid value is provided, it defaults to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLog initializes or reinitializes the logger with the specified log level
// and destination. Provisioning runs log to a file so the styled terminal
// output stays readable; passing nil keeps stderr.
func InitLog(logLevel string, w io.Writer) {
	level := ParseLogLevel(logLevel)
	if w == nil {
		w = os.Stderr
	}

	mu.Lock()
	defer mu.Unlock()

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(handler)
}

// SetAttrs attaches persistent attributes (such as the run id) to every
// subsequent log record.
func SetAttrs(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		logger = logger.With(args...)
	}
}

// GetLog returns the slog.Logger instance configured for the application.
// The logger emits JSON-formatted records at the configured level.
// If the logger hasn't been initialized yet, it defaults to info on stderr.
func GetLog() *slog.Logger {
	mu.RLock()
	if logger != nil {
		defer mu.RUnlock()
		return logger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if logger == nil {
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
		logger = slog.New(handler)
	}

	return logger
}

// Debug logs a message at Debug level.
func Debug(msg string, args ...any) { GetLog().Debug(msg, args...) }

// Info logs a message at Info level.
func Info(msg string, args ...any) { GetLog().Info(msg, args...) }

// Warn logs a message at Warn level.
func Warn(msg string, args ...any) { GetLog().Warn(msg, args...) }

// Error logs a message at Error level.
func Error(msg string, args ...any) { GetLog().Error(msg, args...) }
