// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the examine server's runtime settings.
type Config struct {
	Port string

	// Upload limits
	MaxUploadBytes int64

	// Request handling
	RequestTimeout time.Duration

	// Legacy equation conversion command; empty uses the built-in
	// MTEF converter.
	ConverterCommand string
}

// Load reads configuration from environment variables, applying
// defaults for anything unset.
func Load() Config {
	cfg := Config{
		Port:             envOr("PORT", "8085"),
		MaxUploadBytes:   envInt64("MAX_UPLOAD_BYTES", 26214400), // 25MB
		RequestTimeout:   envDuration("REQUEST_TIMEOUT", 60*time.Second),
		ConverterCommand: os.Getenv("CONVERTER_COMMAND"),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 26214400
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	return cfg
}

// Validate checks for settings that cannot work at all.
func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
