package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	ModelPath       string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ModelPath:       strings.TrimSpace(sharedcfg.EnvOrDefault("MODEL_PATH", "models/pm25_regressor.json")),
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json")),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.ModelPath == "" {
		return nil, errors.New("MODEL_PATH is required")
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.New("invalid LOG_LEVEL: " + cfg.LogLevel)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, errors.New("invalid LOG_FORMAT: " + cfg.LogFormat)
	}

	return cfg, nil
}

// ParseLevel converts a LOG_LEVEL value (debug, info, warn, error) to a slog
// level. Offsets such as "info+2" are rejected.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
