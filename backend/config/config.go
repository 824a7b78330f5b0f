// ABOUTME: Configuration loader for the sizing service
// ABOUTME: Reads an optional .env file, then typed environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// DefaultEnvFile is read when ENV_FILE is not set
const DefaultEnvFile = ".env"

type Config struct {
	// Server
	Port               string        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","` // empty = block all cross-origin

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Rate Limiting
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitDefault int  `env:"RATE_LIMIT_DEFAULT" envDefault:"100"` // requests per minute per client
	RateLimitBatch   int  `env:"RATE_LIMIT_BATCH" envDefault:"20"`    // requests per minute for batch sizing

	// Cache for recommendations
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Sizing
	CalibrationFile  string `env:"CALIBRATION_FILE"` // empty = built-in MNH-1522A table
	SizingRevision   string `env:"SIZING_REVISION" envDefault:"baseline"`
	BatchMaxItems    int    `env:"BATCH_MAX_ITEMS" envDefault:"100"`
	BatchConcurrency int    `env:"BATCH_CONCURRENCY" envDefault:"4"`
}

// Load reads ENV_FILE (default .env) if present, then parses the environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSAllowedOrigins = trimList(cfg.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_DEFAULT", c.RateLimitDefault},
		{"RATE_LIMIT_BATCH", c.RateLimitBatch},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	if c.BatchMaxItems < 1 || c.BatchMaxItems > 10000 {
		return fmt.Errorf("BATCH_MAX_ITEMS must be between 1 and 10000, got %d", c.BatchMaxItems)
	}
	if c.BatchConcurrency < 1 || c.BatchConcurrency > 256 {
		return fmt.Errorf("BATCH_CONCURRENCY must be between 1 and 256, got %d", c.BatchConcurrency)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	if _, err := models.LookupRevision(c.SizingRevision); err != nil {
		return fmt.Errorf("SIZING_REVISION: %w", err)
	}
	return nil
}

func trimList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, part := range values {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
