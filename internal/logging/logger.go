package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger writing to stderr
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	var output = out

	switch cfg.Format {
	case "console":
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	case "json":
		// JSON is the default zerolog format
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a config/env level name to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewFromEnv creates a logger based on environment variables
// PAGEFLIP_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// PAGEFLIP_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	cfg := DefaultConfig()

	if level := os.Getenv("PAGEFLIP_LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level)
	}

	if format := os.Getenv("PAGEFLIP_LOG_FORMAT"); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}

	return New(cfg)
}

// NewFromConfigValues builds a stderr logger from config file values.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" {
		cfg.Format = format
	}
	return New(cfg)
}

// FileConfig controls the optional rotated log file.
type FileConfig struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
}

// NewWithFile creates a logger that writes to stderr and to a rotated file
// in cfg.Dir. The returned closer must be called on shutdown.
func NewWithFile(cfg Config, file FileConfig) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(file.Dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	rotator, err := NewLogRotator(file.Dir, file.MaxSizeMB, file.MaxBackups)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var console io.Writer = os.Stderr
	if cfg.Format == "console" {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(console, rotator)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return logger, rotator, nil
}
