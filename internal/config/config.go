// Package config loads fusioncalc settings from the environment and builds
// the process logger.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// ErrLogLevel indicates an unrecognised FUSION_LOG_LEVEL.
	ErrLogLevel = errors.New("config: unknown log level")

	// ErrLogFormat indicates a FUSION_LOG_FORMAT other than text or json.
	ErrLogFormat = errors.New("config: unknown log format")
)

// Config holds all configuration values. Command-line flags override them.
type Config struct {
	// DataPath is a TSV directory or a YAML bundle; empty selects the
	// embedded sample catalogue.
	DataPath string `env:"FUSION_DATA"`

	// IncludeDLC keeps DLC personas in the catalogue.
	IncludeDLC bool `env:"FUSION_INCLUDE_DLC" envDefault:"true"`

	// Logging
	LogLevel  string `env:"FUSION_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FUSION_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"FUSION_LOG_FILE"`

	// VerifyWorkers bounds the goroutines used by the verify command.
	VerifyWorkers int `env:"FUSION_VERIFY_WORKERS" envDefault:"4"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the logging settings.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrLogFormat, c.LogFormat)
	}
}

// ParseLevel maps debug, info, warn(ing) and error, in any case, to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrLogLevel, s)
	}
}
