package util

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Output io.Writer
}

// DefaultLoggerConfig returns a logger config with sensible defaults.
// Logs go to stderr so stdout stays free for catalog output and the stdio
// MCP transport.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: os.Stderr,
	}
}

// ParseLoggerConfig builds a LoggerConfig from flag values, rejecting
// unknown levels and formats.
func ParseLoggerConfig(level, format string, output io.Writer) (LoggerConfig, error) {
	cfg := DefaultLoggerConfig()
	if output != nil {
		cfg.Output = output
	}

	switch l := LogLevel(strings.ToLower(level)); l {
	case "":
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		cfg.Level = l
	default:
		return cfg, fmt.Errorf("unknown log level %q", level)
	}

	switch f := LogFormat(strings.ToLower(format)); f {
	case "":
	case FormatJSON, FormatText:
		cfg.Format = f
	default:
		return cfg, fmt.Errorf("unknown log format %q", format)
	}

	return cfg, nil
}

// NewLogger creates a new structured logger with the given configuration
func NewLogger(config LoggerConfig) *slog.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level: parseLevel(config.Level),
	}

	var handler slog.Handler
	switch config.Format {
	case FormatText:
		handler = slog.NewTextHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	return slog.New(handler)
}

// NopLogger returns a logger that discards everything. Used by tests.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseLevel converts a LogLevel to slog.Level
func parseLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
